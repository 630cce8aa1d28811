package binder

import (
	"sync"

	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/sanitize"
)

// HTMLView is the stateless projection binder: no engine instance, no
// lifecycle beyond construction. It re-derives a theme class string and the
// sanitized (or trusted) HTML on every relevant input change.
type HTMLView struct {
	cfg       config.Resolved
	sanitizer sanitize.Sanitizer

	mu         sync.Mutex
	theme      string
	themeClass string
	content    string
	html       string
}

// NewHTMLView constructs an HTML projection with the resolved configuration
// providing the theme and sanitize defaults.
func NewHTMLView(opts ...Option) *HTMLView {
	o := buildOptions(opts)
	cfg := o.service.Resolve(o.override)
	h := &HTMLView{cfg: cfg, sanitizer: sanitize.Default()}
	h.recompute(cfg.Theme, "")
	return h
}

// SetTheme recomputes the theme class from the given theme, falling back to
// the resolved default when empty.
func (h *HTMLView) SetTheme(theme string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recompute(theme, h.content)
}

// SetHTML recomputes the projected HTML from the raw content.
func (h *HTMLView) SetHTML(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recompute(h.theme, content)
}

func (h *HTMLView) recompute(theme, content string) {
	if theme == "" {
		theme = h.cfg.Theme
	}
	h.theme = theme
	h.themeClass = "rb-container rb-" + theme + " rb-view-html"
	h.content = content
	if h.cfg.Sanitize {
		h.html = h.sanitizer.Sanitize(content)
	} else {
		h.html = content
	}
}

// ThemeClass returns the derived container class string.
func (h *HTMLView) ThemeClass() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.themeClass
}

// HTML returns the projected HTML: sanitized when the resolved sanitize
// flag is set, trusted as-is otherwise.
func (h *HTMLView) HTML() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.html
}
