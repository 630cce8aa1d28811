package format

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/richbind/core"
	"github.com/hupe1980/richbind/sanitize"
	"github.com/tidwall/gjson"
)

// Options carries the resolved configuration slice the adapter needs. The
// sanitize tri-state (explicit > service default > false) has already been
// collapsed by config resolution.
type Options struct {
	// Format selects the external representation.
	Format core.Format

	// DefaultEmptyValue is substituted for visually empty HTML on the html
	// path. nil keeps the empty string.
	DefaultEmptyValue core.Value

	// Sanitize enables the sanitizer on the html write path.
	Sanitize bool

	// Sanitizer performs the actual cleaning when Sanitize is set. nil
	// falls back to the bluemonday default policy.
	Sanitizer sanitize.Sanitizer
}

func (o Options) sanitizer() sanitize.Sanitizer {
	if o.Sanitizer != nil {
		return o.Sanitizer
	}
	return sanitize.Default()
}

// The engine renders a cleared editor as one of these forms depending on
// theme and block tag configuration.
var visuallyEmpty = map[string]struct{}{
	"<p></p>":         {},
	"<div></div>":     {},
	"<p><br></p>":     {},
	"<div><br></div>": {},
}

// IsVisuallyEmpty reports whether the given HTML is one of the recognized
// renderings of an empty document.
func IsVisuallyEmpty(html string) bool {
	_, ok := visuallyEmpty[html]
	return ok
}

// Decode reads the editor's content and produces the external value for the
// configured format. The json branch falls back to plain text if Delta
// serialization fails.
func Decode(ed core.Editor, opts Options) core.Value {
	html := ed.GetSemanticHTML()
	if IsVisuallyEmpty(html) {
		if opts.DefaultEmptyValue != nil {
			if opts.Format == core.FormatHTML || opts.Format == "" {
				return opts.DefaultEmptyValue
			}
		}
		html = ""
	}

	switch opts.Format {
	case core.FormatText:
		return core.TextValue(ed.GetText())
	case core.FormatObject:
		return core.DeltaValue{Delta: ed.GetContents()}
	case core.FormatJSON:
		raw, err := json.Marshal(ed.GetContents())
		if err != nil {
			return core.TextValue(ed.GetText())
		}
		return core.JSONValue(raw)
	default:
		return core.HTMLValue(html)
	}
}

// Encode turns an external value into the write instruction for the editor.
// HTML is optionally sanitized and then converted through the engine's HTML
// importer; JSON is parsed into a Delta, falling back to a literal text
// insert when the input is not valid JSON; text and structured documents
// pass through unchanged, leaving the caller to pick the native setter.
func Encode(clipboard core.Clipboard, v core.Value, opts Options) (core.Content, error) {
	switch val := v.(type) {
	case core.TextValue:
		return core.TextContent{Text: string(val)}, nil
	case core.DeltaValue:
		return core.DeltaContent{Delta: val.Delta}, nil
	case core.HTMLValue:
		html := string(val)
		if opts.Sanitize {
			html = opts.sanitizer().Sanitize(html)
		}
		delta, err := clipboard.Convert(html)
		if err != nil {
			return nil, fmt.Errorf("format: convert html: %w", err)
		}
		return core.DeltaContent{Delta: delta}, nil
	case core.JSONValue:
		return core.DeltaContent{Delta: parseJSONDelta(string(val))}, nil
	default:
		return nil, fmt.Errorf("format: unsupported value type %T", v)
	}
}

// parseJSONDelta accepts either a {"ops":[...]} document or a bare op array.
// Anything that is not valid JSON becomes a single literal insert carrying
// the raw string.
func parseJSONDelta(raw string) core.Delta {
	if !gjson.Valid(raw) {
		return core.NewDelta(core.Op{Insert: raw})
	}
	parsed := gjson.Parse(raw)
	if parsed.IsArray() {
		var ops []core.Op
		if err := json.Unmarshal([]byte(raw), &ops); err != nil {
			return core.NewDelta(core.Op{Insert: raw})
		}
		return core.Delta{Ops: ops}
	}
	var delta core.Delta
	if err := json.Unmarshal([]byte(raw), &delta); err != nil || delta.Ops == nil {
		return core.NewDelta(core.Op{Insert: raw})
	}
	return delta
}
