package testutil

import "github.com/hupe1980/richbind/core"

// DeltaBuilder provides a fluent helper for constructing documents in tests.
// Example:
//
//	doc := NewDeltaBuilder().Text("Hello ").Bold("World").Line().Build()
//
// Chain only the parts you need; Line appends the terminating newline.
type DeltaBuilder struct {
	delta core.Delta
}

// NewDeltaBuilder creates an empty builder.
func NewDeltaBuilder() *DeltaBuilder { return &DeltaBuilder{} }

// Text appends a plain insert (chainable).
func (b *DeltaBuilder) Text(s string) *DeltaBuilder {
	b.delta = b.delta.Insert(s, nil)
	return b
}

// Bold appends a bold insert (chainable).
func (b *DeltaBuilder) Bold(s string) *DeltaBuilder {
	b.delta = b.delta.Insert(s, map[string]any{"bold": true})
	return b
}

// Italic appends an italic insert (chainable).
func (b *DeltaBuilder) Italic(s string) *DeltaBuilder {
	b.delta = b.delta.Insert(s, map[string]any{"italic": true})
	return b
}

// Link appends a link insert (chainable).
func (b *DeltaBuilder) Link(s, href string) *DeltaBuilder {
	b.delta = b.delta.Insert(s, map[string]any{"link": href})
	return b
}

// Image appends an image embed (chainable).
func (b *DeltaBuilder) Image(src string) *DeltaBuilder {
	b.delta = b.delta.InsertEmbed(map[string]any{"image": src}, nil)
	return b
}

// Line appends the block-terminating newline (chainable).
func (b *DeltaBuilder) Line() *DeltaBuilder {
	b.delta = b.delta.Insert("\n", nil)
	return b
}

// Build returns the constructed Delta.
func (b *DeltaBuilder) Build() core.Delta { return b.delta }
