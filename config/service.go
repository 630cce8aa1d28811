package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/richbind/core"
	"gopkg.in/yaml.v3"
)

// Built-in defaults applied when neither the binder override nor the service
// defaults set an option.
const (
	DefaultTheme           = "snow"
	DefaultDebug           = "warn"
	DefaultToolbarPosition = "top"
	DefaultFormat          = core.FormatHTML
)

// Service holds the service-level default configuration shared by every
// binder constructed from the same richbind instance. It is immutable after
// construction; per-binder overrides are merged on top by Resolve.
type Service struct {
	defaults Config
}

// NewService constructs a Service with the given defaults. A zero Config is
// valid and leaves every option at its built-in default.
func NewService(defaults Config) *Service {
	return &Service{defaults: defaults}
}

// Defaults returns a copy of the service-level default configuration.
func (s *Service) Defaults() Config { return s.defaults }

// Resolve merges a binder-level override onto the service defaults and the
// built-in defaults, producing an immutable snapshot. Precedence per field:
// override > service default > built-in.
func (s *Service) Resolve(override Config) Resolved {
	d := s.defaults
	r := Resolved{
		Format:           pickFormat(override.Format, d.Format),
		Theme:            pickString(override.Theme, d.Theme, DefaultTheme),
		Modules:          pickModules(override.Modules, d.Modules),
		Debug:            pickString(override.Debug, d.Debug, DefaultDebug),
		ReadOnly:         pickBool(override.ReadOnly, d.ReadOnly, false),
		Placeholder:      pickStringPtr(override.Placeholder, d.Placeholder, ""),
		MaxLength:        pickInt(override.MaxLength, d.MaxLength, 0),
		MinLength:        pickInt(override.MinLength, d.MinLength, 0),
		Required:         pickBool(override.Required, d.Required, false),
		Formats:          pickStrings(override.Formats, d.Formats),
		ToolbarPosition:  pickString(override.ToolbarPosition, d.ToolbarPosition, DefaultToolbarPosition),
		Sanitize:         pickBool(override.Sanitize, d.Sanitize, false),
		Bounds:           pickString(override.Bounds, d.Bounds, ""),
		Styles:           pickStyles(override.Styles, d.Styles),
		Classes:          pickString(override.Classes, d.Classes, ""),
		TrackChanges:     TrackChanges(pickString(string(override.TrackChanges), string(d.TrackChanges), string(TrackUser))),
		TrimOnValidation: pickBool(override.TrimOnValidation, d.TrimOnValidation, false),
		LinkPlaceholder:  pickStringPtr(override.LinkPlaceholder, d.LinkPlaceholder, ""),
		CompareValues:    pickBool(override.CompareValues, d.CompareValues, false),
		FilterNull:       pickBool(override.FilterNull, d.FilterNull, false),
		CustomOptions:    pickCustomOptions(override.CustomOptions, d.CustomOptions),
		CustomModules:    pickCustomModules(override.CustomModules, d.CustomModules),
		Registry:         pickAny(override.Registry, d.Registry),

		SuppressGlobalRegisterWarning: pickBool(override.SuppressGlobalRegisterWarning, d.SuppressGlobalRegisterWarning, false),
	}
	if override.BeforeRender != nil {
		r.BeforeRender = override.BeforeRender
	} else {
		r.BeforeRender = d.BeforeRender
	}
	if override.DefaultEmptyValue != nil {
		r.DefaultEmptyValue = override.DefaultEmptyValue
	} else {
		r.DefaultEmptyValue = d.DefaultEmptyValue
	}
	if dt := pickDuration(override.DebounceTime, d.DebounceTime); dt != nil {
		r.DebounceTime = *dt
		r.HasDebounce = true
	}
	return r
}

// LoadFile reads service-level defaults from a YAML file. Only the data
// subset of the option surface participates; hooks, module factories and
// registries are code-only.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func pickFormat(override, def core.Format) core.Format {
	if override != "" {
		return override
	}
	if def != "" {
		return def
	}
	return DefaultFormat
}

func pickString(override, def, builtin string) string {
	if override != "" {
		return override
	}
	if def != "" {
		return def
	}
	return builtin
}

func pickStringPtr(override, def *string, builtin string) string {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return builtin
}

func pickBool(override, def *bool, builtin bool) bool {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return builtin
}

func pickInt(override, def *int, builtin int) int {
	if override != nil {
		return *override
	}
	if def != nil {
		return *def
	}
	return builtin
}

func pickDuration(override, def *time.Duration) *time.Duration {
	if override != nil {
		return override
	}
	return def
}

func pickStrings(override, def []string) []string {
	if override != nil {
		return override
	}
	return def
}

func pickModules(override, def map[string]any) map[string]any {
	if override != nil {
		return override
	}
	return def
}

func pickStyles(override, def map[string]string) map[string]string {
	if override != nil {
		return override
	}
	return def
}

func pickCustomOptions(override, def []CustomOption) []CustomOption {
	if override != nil {
		return override
	}
	return def
}

func pickCustomModules(override, def []CustomModule) []CustomModule {
	if override != nil {
		return override
	}
	return def
}

func pickAny(override, def any) any {
	if override != nil {
		return override
	}
	return def
}

// Ptr returns a pointer to v. Convenience for building override configs with
// tri-state fields.
func Ptr[T any](v T) *T { return &v }
