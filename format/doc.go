// Package format converts between the external value representations a
// binder exchanges with its host (plain text, structured Delta, HTML string,
// JSON string) and the engine's native content model.
//
// Decode reads a live editor and produces the external value for the
// configured format, substituting the configured empty-value sentinel when
// the rendered HTML is one of the recognized visually-empty forms. Encode
// turns an external value into a write instruction (plain text or Delta) and
// applies the sanitization policy on the html path. Malformed JSON input is a
// configuration error recovered locally: the raw string becomes a literal
// text insert, never a surfaced parse error.
package format
