// Package config defines the declarative configuration surface of richbind
// and the precedence rules that resolve it.
//
// Every recognized option can be set per binder and falls back to a
// service-level default, which in turn falls back to a built-in default
// (notably format "html" and theme "snow"). Resolution produces an immutable
// Resolved snapshot consumed at editor instantiation time; a live editor is
// never reconfigured in place except through the documented direct setters
// (read-only flag, placeholder, styles, classes, debounce interval).
//
// Service-level defaults may be loaded from a YAML file via LoadFile for the
// data-only subset of options; hooks, factories and registries must be wired
// in code.
package config
