package core

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Op is a single operation within a Delta document. Exactly one of Insert,
// Retain or Delete is meaningful per op. Insert holds a string for text or an
// arbitrary map for embeds (images, videos); Attributes carries formatting
// such as bold or links. The JSON shape matches the engine's wire format.
type Op struct {
	Insert     any            `json:"insert,omitempty"`
	Retain     int            `json:"retain,omitempty"`
	Delete     int            `json:"delete,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// IsInsert reports whether the op carries inserted content.
func (o Op) IsInsert() bool { return o.Insert != nil }

// InsertString returns the inserted text and true when Insert is a plain
// string. Embeds return ("", false).
func (o Op) InsertString() (string, bool) {
	s, ok := o.Insert.(string)
	return s, ok
}

// Delta is the engine's native content representation: an ordered list of
// operations. A document Delta consists of insert ops only; change Deltas may
// additionally retain and delete. After emission through a change event a
// Delta should be treated as immutable.
type Delta struct {
	Ops []Op `json:"ops"`
}

// NewDelta creates an empty Delta.
func NewDelta(ops ...Op) Delta { return Delta{Ops: ops} }

// Insert appends a text insert op and returns the updated Delta, enabling
// fluent construction.
func (d Delta) Insert(text string, attrs map[string]any) Delta {
	d.Ops = append(d.Ops, Op{Insert: text, Attributes: attrs})
	return d
}

// InsertEmbed appends an embed insert op (image, video, ...).
func (d Delta) InsertEmbed(embed map[string]any, attrs map[string]any) Delta {
	d.Ops = append(d.Ops, Op{Insert: embed, Attributes: attrs})
	return d
}

// Retain appends a retain op.
func (d Delta) Retain(n int, attrs map[string]any) Delta {
	d.Ops = append(d.Ops, Op{Retain: n, Attributes: attrs})
	return d
}

// Delete appends a delete op.
func (d Delta) Delete(n int) Delta {
	d.Ops = append(d.Ops, Op{Delete: n})
	return d
}

// Concat returns a new Delta whose ops are d's followed by other's.
func (d Delta) Concat(other Delta) Delta {
	ops := make([]Op, 0, len(d.Ops)+len(other.Ops))
	ops = append(ops, d.Ops...)
	ops = append(ops, other.Ops...)
	return Delta{Ops: ops}
}

// Length returns the document length in characters. Text inserts count by
// rune, embeds and retains count as one position each, deletes as zero.
func (d Delta) Length() int {
	n := 0
	for _, op := range d.Ops {
		switch {
		case op.Insert != nil:
			if s, ok := op.Insert.(string); ok {
				n += len([]rune(s))
			} else {
				n++
			}
		case op.Retain > 0:
			n += op.Retain
		}
	}
	return n
}

// Text extracts the plain text of all string inserts in order. Embeds
// contribute nothing, mirroring the engine's plain-text accessor.
func (d Delta) Text() string {
	var b strings.Builder
	for _, op := range d.Ops {
		if s, ok := op.Insert.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// IsEmpty reports whether the Delta contains no ops.
func (d Delta) IsEmpty() bool { return len(d.Ops) == 0 }

// IsBlank reports whether the document consists of exactly one insert op
// whose content is an empty string or a single newline. The engine represents
// a cleared editor this way, so required-field validation keys off it.
func (d Delta) IsBlank() bool {
	if len(d.Ops) != 1 {
		return false
	}
	s, ok := d.Ops[0].InsertString()
	return ok && (s == "" || s == "\n")
}

// Normalized returns the Delta as the engine would store it: empty-string
// inserts dropped and the implicit trailing newline guaranteed. A Delta with
// no remaining content normalizes to the single-newline document the engine
// uses for a cleared editor.
func (d Delta) Normalized() Delta {
	ops := make([]Op, 0, len(d.Ops))
	for _, op := range d.Ops {
		if s, ok := op.InsertString(); ok && s == "" {
			continue
		}
		ops = append(ops, op)
	}
	n := Delta{Ops: ops}
	if len(n.Ops) == 0 {
		return FromText("\n")
	}
	if !strings.HasSuffix(n.Text(), "\n") {
		return n.Insert("\n", nil)
	}
	return n
}

// Clone returns a deep copy of the Delta safe for independent mutation.
func (d Delta) Clone() Delta {
	ops := make([]Op, len(d.Ops))
	copy(ops, d.Ops)
	for i, op := range ops {
		if op.Attributes != nil {
			attrs := make(map[string]any, len(op.Attributes))
			for k, v := range op.Attributes {
				attrs[k] = v
			}
			ops[i].Attributes = attrs
		}
	}
	return Delta{Ops: ops}
}

// Equal reports deep equality with other via canonical JSON serialization.
// The binders use this for the optional compare-before-write optimization.
func (d Delta) Equal(other Delta) bool {
	a, errA := json.Marshal(d)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

// FromText builds a document Delta containing the given plain text as a
// single insert op.
func FromText(text string) Delta {
	return Delta{Ops: []Op{{Insert: text}}}
}

// NewID generates a new unique identifier for editor instances and events.
func NewID() string { return uuid.NewString() }
