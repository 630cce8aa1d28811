package core

// Format selects which external representation a binder exchanges with the
// host application: plain text, the structured Delta document, an HTML string
// or a JSON-serialized Delta.
type Format string

const (
	// FormatText exchanges plain text.
	FormatText Format = "text"
	// FormatObject exchanges the structured Delta document as-is.
	FormatObject Format = "object"
	// FormatHTML exchanges an HTML string. This is the built-in default.
	FormatHTML Format = "html"
	// FormatJSON exchanges the Delta serialized as a JSON string.
	FormatJSON Format = "json"
)

// Value represents a polymorphic external value exchanged between a binder
// and the host. Concrete value types implement the unexported isValue marker
// enabling a closed set.
type Value interface{ isValue() }

// TextValue is a plain text external value.
type TextValue string

// isValue implements the Value interface for TextValue.
func (TextValue) isValue() {}

// HTMLValue is an HTML string external value.
type HTMLValue string

// isValue implements the Value interface for HTMLValue.
func (HTMLValue) isValue() {}

// JSONValue is a JSON-serialized Delta external value.
type JSONValue string

// isValue implements the Value interface for JSONValue.
func (JSONValue) isValue() {}

// DeltaValue is a structured document external value.
type DeltaValue struct {
	Delta Delta
}

// isValue implements the Value interface for DeltaValue.
func (DeltaValue) isValue() {}

// IsEmptyValue reports whether v carries no content: nil, an empty string
// variant, or a Delta with no ops. Writing an empty value clears the editor.
func IsEmptyValue(v Value) bool {
	switch val := v.(type) {
	case nil:
		return true
	case TextValue:
		return val == ""
	case HTMLValue:
		return val == ""
	case JSONValue:
		return val == ""
	case DeltaValue:
		return val.Delta.IsEmpty()
	default:
		return false
	}
}

// Content is the write instruction produced by encoding an external value:
// either plain text destined for the editor's text setter or a Delta destined
// for the structured setter. Concrete types implement the unexported
// isContent marker enabling a closed set.
type Content interface{ isContent() }

// TextContent instructs the caller to write plain text via SetText.
type TextContent struct {
	Text string
}

// isContent implements the Content interface for TextContent.
func (TextContent) isContent() {}

// DeltaContent instructs the caller to write a document via SetContents.
type DeltaContent struct {
	Delta Delta
}

// isContent implements the Content interface for DeltaContent.
func (DeltaContent) isContent() {}
