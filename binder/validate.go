package binder

import "strings"

// MinLengthError reports content shorter than the configured minimum.
type MinLengthError struct {
	Given     int
	MinLength int
}

// MaxLengthError reports content longer than the configured maximum.
type MaxLengthError struct {
	Given     int
	MaxLength int
}

// RequiredError reports an empty document on a required control.
type RequiredError struct {
	Empty bool
}

// ValidationResult is the structured outcome of Validate. Multiple errors
// may combine in one result; a nil result means valid. It is consumed by the
// hosting framework's own error-reporting convention, never raised as a Go
// error.
type ValidationResult struct {
	MinLength *MinLengthError
	MaxLength *MaxLengthError
	Required  *RequiredError
}

// Valid reports whether the result carries no errors.
func (r *ValidationResult) Valid() bool {
	return r == nil || (r.MinLength == nil && r.MaxLength == nil && r.Required == nil)
}

// effectiveTextLength computes the validation length of the editor text: the
// raw length minus the engine's implicit trailing newline, a single
// newline-only document counting as zero. With trim enabled the text is
// trimmed instead and measured as-is.
func effectiveTextLength(text string, trim bool) int {
	if trim {
		return len([]rune(strings.TrimSpace(text)))
	}
	if text == "\n" {
		return 0
	}
	if n := len([]rune(text)); n > 0 {
		return n - 1
	}
	return 0
}
