package engine

import (
	"encoding/json"

	"github.com/hupe1980/richbind/core"
)

// cell is one document position: a rune of text or an embed, with its
// formatting attributes.
type cell struct {
	ch    rune
	embed map[string]any
	attrs map[string]any
}

func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	return string(ja) == string(jb)
}

func explode(d core.Delta) []cell {
	var cells []cell
	for _, op := range d.Ops {
		switch ins := op.Insert.(type) {
		case string:
			for _, r := range ins {
				cells = append(cells, cell{ch: r, attrs: op.Attributes})
			}
		case map[string]any:
			cells = append(cells, cell{embed: ins, attrs: op.Attributes})
		}
	}
	return cells
}

func collapse(cells []cell) core.Delta {
	var d core.Delta
	i := 0
	for i < len(cells) {
		c := cells[i]
		if c.embed != nil {
			d.Ops = append(d.Ops, core.Op{Insert: c.embed, Attributes: c.attrs})
			i++
			continue
		}
		j := i
		runes := make([]rune, 0, 8)
		for j < len(cells) && cells[j].embed == nil && attrsEqual(cells[j].attrs, c.attrs) {
			runes = append(runes, cells[j].ch)
			j++
		}
		d.Ops = append(d.Ops, core.Op{Insert: string(runes), Attributes: c.attrs})
		i = j
	}
	return d
}

// mergeAttrs applies a retain op's attribute payload: non-nil values set,
// nil values remove.
func mergeAttrs(base, delta map[string]any) map[string]any {
	if len(delta) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(delta))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range delta {
		if v == nil {
			delete(out, k)
		} else {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// applyChange composes a change Delta (retain/insert/delete ops) against a
// document Delta at character granularity.
func applyChange(doc, change core.Delta) core.Delta {
	cells := explode(doc)
	var out []cell
	pos := 0
	for _, op := range change.Ops {
		switch {
		case op.Insert != nil:
			switch ins := op.Insert.(type) {
			case string:
				for _, r := range ins {
					out = append(out, cell{ch: r, attrs: op.Attributes})
				}
			case map[string]any:
				out = append(out, cell{embed: ins, attrs: op.Attributes})
			}
		case op.Retain > 0:
			for i := 0; i < op.Retain && pos < len(cells); i++ {
				c := cells[pos]
				c.attrs = mergeAttrs(c.attrs, op.Attributes)
				out = append(out, c)
				pos++
			}
		case op.Delete > 0:
			pos += op.Delete
			if pos > len(cells) {
				pos = len(cells)
			}
		}
	}
	out = append(out, cells[min(pos, len(cells)):]...)
	return collapse(out)
}
