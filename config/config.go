package config

import (
	"context"
	"time"

	"github.com/hupe1980/richbind/core"
)

// TrackChanges selects which mutation sources push values through the
// two-way binding: only user edits, or every source including API writes.
type TrackChanges string

const (
	// TrackUser pushes model updates for user-originated changes only.
	TrackUser TrackChanges = "user"
	// TrackAll pushes model updates for every change source.
	TrackAll TrackChanges = "all"
)

// ModuleFactory produces the implementation of a custom engine module. A
// factory may perform asynchronous work (loading, network fetches); a
// returned error is terminal for the engine acquisition that triggered it.
type ModuleFactory func(ctx context.Context) (any, error)

// CustomOption describes a one-time global registration of an engine option:
// the definition registered under Import gets its whitelist extended before
// being re-registered with overwrite enabled.
type CustomOption struct {
	Import    string `yaml:"import"`
	Whitelist []any  `yaml:"whitelist"`
}

// CustomModule pairs a registry path with the factory producing the module
// implementation.
type CustomModule struct {
	Path    string
	Factory ModuleFactory
}

// BeforeRenderHook runs after the engine module is acquired and before any
// editor is constructed from it.
type BeforeRenderHook func(ctx context.Context) error

// Config is the full recognized option surface. The zero value means "unset"
// for every field: strings resolve through empty, scalars through nil
// pointers, so service-level defaults and built-ins can fill the gaps.
// Function-valued and engine-valued fields are excluded from YAML loading.
type Config struct {
	Format           core.Format       `yaml:"format"`
	Theme            string            `yaml:"theme"`
	Modules          map[string]any    `yaml:"modules"`
	Debug            string            `yaml:"debug"`
	ReadOnly         *bool             `yaml:"readOnly"`
	Placeholder      *string           `yaml:"placeholder"`
	MaxLength        *int              `yaml:"maxLength"`
	MinLength        *int              `yaml:"minLength"`
	Required         *bool             `yaml:"required"`
	Formats          []string          `yaml:"formats"`
	ToolbarPosition  string            `yaml:"toolbarPosition"`
	Sanitize         *bool             `yaml:"sanitize"`
	Bounds           string            `yaml:"bounds"`
	Styles           map[string]string `yaml:"styles"`
	Classes          string            `yaml:"classes"`
	TrackChanges     TrackChanges      `yaml:"trackChanges"`
	TrimOnValidation *bool             `yaml:"trimOnValidation"`
	LinkPlaceholder  *string           `yaml:"linkPlaceholder"`
	CompareValues    *bool             `yaml:"compareValues"`
	FilterNull       *bool             `yaml:"filterNull"`
	DebounceTime     *time.Duration    `yaml:"debounceTime"`
	CustomOptions    []CustomOption    `yaml:"customOptions"`

	// SuppressGlobalRegisterWarning silences the duplicate-registration
	// warning emitted when a second binder mount re-registers a custom
	// option or module.
	SuppressGlobalRegisterWarning *bool `yaml:"suppressGlobalRegisterWarning"`

	// Code-only options.
	BeforeRender      BeforeRenderHook `yaml:"-"`
	CustomModules     []CustomModule   `yaml:"-"`
	Registry          any              `yaml:"-"`
	DefaultEmptyValue core.Value       `yaml:"-"`
}

// Resolved is the immutable option snapshot produced by Service.Resolve. All
// tri-state fields have collapsed to concrete values.
type Resolved struct {
	Format            core.Format
	Theme             string
	Modules           map[string]any
	Debug             string
	ReadOnly          bool
	Placeholder       string
	MaxLength         int
	MinLength         int
	Required          bool
	Formats           []string
	ToolbarPosition   string
	Sanitize          bool
	Bounds            string
	Styles            map[string]string
	Classes           string
	TrackChanges      TrackChanges
	TrimOnValidation  bool
	LinkPlaceholder   string
	CompareValues     bool
	FilterNull        bool
	DebounceTime      time.Duration
	HasDebounce       bool
	CustomOptions     []CustomOption
	CustomModules     []CustomModule
	BeforeRender      BeforeRenderHook
	Registry          any
	DefaultEmptyValue core.Value

	SuppressGlobalRegisterWarning bool
}

// EditorOptions projects the subset of the snapshot the engine itself
// understands. Binder-only options never reach the engine. Toolbar defaults
// to enabled when no modules are configured.
func (r Resolved) EditorOptions() core.EditorOptions {
	modules := r.Modules
	if modules == nil {
		modules = map[string]any{"toolbar": true}
	}
	return core.EditorOptions{
		Theme:       r.Theme,
		Modules:     modules,
		Placeholder: r.Placeholder,
		ReadOnly:    r.ReadOnly,
		Formats:     r.Formats,
		Bounds:      r.Bounds,
		Debug:       r.Debug,
		Registry:    r.Registry,
	}
}
