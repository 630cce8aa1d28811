package engine

import (
	"fmt"
	"strings"

	"github.com/hupe1980/richbind/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ClipboardModule converts external HTML into the engine's Delta
// representation. It understands the subset of markup a rich-text editor
// produces: paragraph and heading blocks, line breaks, bold/italic/underline
// inline formatting, links and image embeds. Unknown elements contribute
// their text content.
type ClipboardModule struct{}

// Convert parses the HTML fragment and returns the corresponding document
// Delta, normalized with the engine's trailing newline.
func (c *ClipboardModule) Convert(rawHTML string) (core.Delta, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return core.FromText("\n"), nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(rawHTML), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return core.Delta{}, fmt.Errorf("engine: parse html: %w", err)
	}

	var cells []cell
	for _, n := range nodes {
		cells = walkNode(cells, n, nil)
	}
	return collapse(cells).Normalized(), nil
}

var blockTags = map[atom.Atom]struct{}{
	atom.P: {}, atom.Div: {}, atom.H1: {}, atom.H2: {}, atom.H3: {},
	atom.H4: {}, atom.H5: {}, atom.H6: {}, atom.Li: {}, atom.Blockquote: {},
	atom.Pre: {},
}

func walkNode(cells []cell, n *html.Node, attrs map[string]any) []cell {
	switch n.Type {
	case html.TextNode:
		for _, r := range n.Data {
			cells = append(cells, cell{ch: r, attrs: attrs})
		}
		return cells
	case html.ElementNode:
		childAttrs := attrs
		switch n.DataAtom {
		case atom.B, atom.Strong:
			childAttrs = withAttr(attrs, "bold", true)
		case atom.I, atom.Em:
			childAttrs = withAttr(attrs, "italic", true)
		case atom.U:
			childAttrs = withAttr(attrs, "underline", true)
		case atom.A:
			if href := attrValue(n, "href"); href != "" {
				childAttrs = withAttr(attrs, "link", href)
			}
		case atom.Br:
			return append(cells, cell{ch: '\n'})
		case atom.Img:
			if src := attrValue(n, "src"); src != "" {
				return append(cells, cell{embed: map[string]any{"image": src}, attrs: attrs})
			}
			return cells
		case atom.Script, atom.Style:
			return cells
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			cells = walkNode(cells, child, childAttrs)
		}
		if _, block := blockTags[n.DataAtom]; block {
			cells = append(cells, cell{ch: '\n'})
		}
		return cells
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			cells = walkNode(cells, child, attrs)
		}
		return cells
	}
}

func withAttr(attrs map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out[key] = value
	return out
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
