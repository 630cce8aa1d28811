package binder

import (
	"testing"

	"github.com/hupe1980/richbind/config"
	"github.com/stretchr/testify/assert"
)

func TestHTMLView_ThemeClass(t *testing.T) {
	h := NewHTMLView()
	assert.Equal(t, "rb-container rb-snow rb-view-html", h.ThemeClass())

	h.SetTheme("bubble")
	assert.Equal(t, "rb-container rb-bubble rb-view-html", h.ThemeClass())

	// Empty theme falls back to the resolved default.
	h.SetTheme("")
	assert.Equal(t, "rb-container rb-snow rb-view-html", h.ThemeClass())
}

func TestHTMLView_SanitizedProjection(t *testing.T) {
	h := NewHTMLView(WithConfig(config.Config{Sanitize: config.Ptr(true)}))
	h.SetHTML(`<p>ok</p><script>alert(1)</script>`)
	assert.Equal(t, "<p>ok</p>", h.HTML(), "script content is stripped")
}

func TestHTMLView_TrustedProjection(t *testing.T) {
	h := NewHTMLView()
	raw := `<p onclick="x()">raw</p>`
	h.SetHTML(raw)
	assert.Equal(t, raw, h.HTML(), "without sanitize the HTML passes through untouched")
}

func TestHTMLView_ThemeChangeKeepsContent(t *testing.T) {
	h := NewHTMLView()
	h.SetHTML("<p>kept</p>")
	h.SetTheme("bubble")
	assert.Equal(t, "<p>kept</p>", h.HTML())
	assert.Equal(t, "rb-container rb-bubble rb-view-html", h.ThemeClass())
}
