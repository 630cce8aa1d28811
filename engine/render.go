package engine

import (
	"fmt"
	"html"
	"strings"

	"github.com/hupe1980/richbind/core"
)

// renderHTML produces the semantic HTML rendering of a document: one <p>
// block per line, empty lines rendered as <p><br></p>, inline formatting
// mapped to semantic tags.
func renderHTML(doc core.Delta) string {
	cells := explode(doc)

	var b strings.Builder
	var line []cell
	flush := func() {
		b.WriteString("<p>")
		if len(line) == 0 {
			b.WriteString("<br>")
		} else {
			renderLine(&b, line)
		}
		b.WriteString("</p>")
		line = line[:0]
	}

	for _, c := range cells {
		if c.embed == nil && c.ch == '\n' {
			flush()
			continue
		}
		line = append(line, c)
	}
	// The trailing newline terminates the final block; anything after it
	// means a malformed document but still gets flushed.
	if len(line) > 0 {
		flush()
	}
	return b.String()
}

func renderLine(b *strings.Builder, line []cell) {
	i := 0
	for i < len(line) {
		c := line[i]
		if c.embed != nil {
			renderEmbed(b, c.embed)
			i++
			continue
		}
		j := i
		runes := make([]rune, 0, 8)
		for j < len(line) && line[j].embed == nil && attrsEqual(line[j].attrs, c.attrs) {
			runes = append(runes, line[j].ch)
			j++
		}
		renderSpan(b, string(runes), c.attrs)
		i = j
	}
}

func renderSpan(b *strings.Builder, text string, attrs map[string]any) {
	var open []string
	if href, ok := attrs["link"].(string); ok {
		open = append(open, `<a href="`+html.EscapeString(href)+`">`)
	}
	if truthy(attrs["bold"]) {
		open = append(open, "<strong>")
	}
	if truthy(attrs["italic"]) {
		open = append(open, "<em>")
	}
	if truthy(attrs["underline"]) {
		open = append(open, "<u>")
	}
	for _, tag := range open {
		b.WriteString(tag)
	}
	b.WriteString(html.EscapeString(text))
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString(closingTag(open[i]))
	}
}

func closingTag(openTag string) string {
	switch {
	case strings.HasPrefix(openTag, "<a "):
		return "</a>"
	case openTag == "<strong>":
		return "</strong>"
	case openTag == "<em>":
		return "</em>"
	default:
		return "</u>"
	}
}

func renderEmbed(b *strings.Builder, embed map[string]any) {
	if src, ok := embed["image"].(string); ok {
		fmt.Fprintf(b, `<img src=%q>`, src)
		return
	}
	if src, ok := embed["video"].(string); ok {
		fmt.Fprintf(b, `<video src=%q></video>`, src)
	}
}

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
