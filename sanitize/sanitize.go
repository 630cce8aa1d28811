// Package sanitize defines the delegated HTML-sanitization collaborator used
// on the html write path and by the stateless HTML binder. richbind adds no
// error handling of its own around sanitization; failure and empty-result
// semantics are whatever the configured Sanitizer defines.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Sanitizer cleans untrusted HTML before it reaches the engine's HTML
// importer or the host's rendering target.
type Sanitizer interface {
	Sanitize(html string) string
}

// PolicySanitizer wraps a bluemonday policy.
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewPolicySanitizer constructs a Sanitizer from an explicit bluemonday
// policy.
func NewPolicySanitizer(p *bluemonday.Policy) *PolicySanitizer {
	return &PolicySanitizer{policy: p}
}

// Default returns a Sanitizer based on bluemonday's user-generated-content
// policy, which keeps the formatting elements a rich-text editor emits while
// stripping scripts and event handlers.
func Default() *PolicySanitizer {
	return NewPolicySanitizer(bluemonday.UGCPolicy())
}

// Sanitize cleans the given HTML fragment.
func (s *PolicySanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

// NoOp passes HTML through untouched. Used when sanitization resolves to
// disabled.
type NoOp struct{}

// Sanitize returns the input unchanged.
func (NoOp) Sanitize(html string) string { return html }
