// Package testutil provides builders and fakes shared by richbind's test
// suites: a fluent Delta builder, a fake host container, and recorders for
// the form-control callbacks. Keeping construction noise here keeps the
// behavioral tests focused on lifecycle and emission semantics.
package testutil
