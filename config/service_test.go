package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/richbind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_BuiltinDefaults(t *testing.T) {
	s := NewService(Config{})
	r := s.Resolve(Config{})

	assert.Equal(t, core.FormatHTML, r.Format)
	assert.Equal(t, "snow", r.Theme)
	assert.Equal(t, "warn", r.Debug)
	assert.Equal(t, "top", r.ToolbarPosition)
	assert.Equal(t, TrackUser, r.TrackChanges)
	assert.False(t, r.ReadOnly)
	assert.False(t, r.Sanitize)
	assert.False(t, r.Required)
	assert.False(t, r.HasDebounce)
}

func TestResolve_Precedence(t *testing.T) {
	s := NewService(Config{
		Format:   core.FormatText,
		Theme:    "bubble",
		Sanitize: Ptr(true),
		MinLength: Ptr(2),
	})

	// Service defaults win over built-ins.
	r := s.Resolve(Config{})
	assert.Equal(t, core.FormatText, r.Format)
	assert.Equal(t, "bubble", r.Theme)
	assert.True(t, r.Sanitize)
	assert.Equal(t, 2, r.MinLength)

	// Binder overrides win over service defaults.
	r = s.Resolve(Config{
		Format:    core.FormatObject,
		Sanitize:  Ptr(false),
		MinLength: Ptr(5),
	})
	assert.Equal(t, core.FormatObject, r.Format)
	assert.False(t, r.Sanitize)
	assert.Equal(t, 5, r.MinLength)
	assert.Equal(t, "bubble", r.Theme, "untouched fields still resolve through service defaults")
}

func TestResolve_DebounceTriState(t *testing.T) {
	s := NewService(Config{})
	r := s.Resolve(Config{DebounceTime: Ptr(150 * time.Millisecond)})
	require.True(t, r.HasDebounce)
	assert.Equal(t, 150*time.Millisecond, r.DebounceTime)

	// An explicit zero is a real value ("debounce with no delay"), distinct
	// from unset.
	r = s.Resolve(Config{DebounceTime: Ptr(time.Duration(0))})
	assert.True(t, r.HasDebounce)
	assert.Zero(t, r.DebounceTime)
}

func TestResolve_EditorOptionsProjection(t *testing.T) {
	s := NewService(Config{})
	r := s.Resolve(Config{
		Theme:       "bubble",
		Placeholder: Ptr("Compose..."),
		ReadOnly:    Ptr(true),
		Formats:     []string{"bold", "link"},
	})
	opts := r.EditorOptions()
	assert.Equal(t, "bubble", opts.Theme)
	assert.Equal(t, "Compose...", opts.Placeholder)
	assert.True(t, opts.ReadOnly)
	assert.Equal(t, []string{"bold", "link"}, opts.Formats)
	assert.Equal(t, map[string]any{"toolbar": true}, opts.Modules, "toolbar enabled by default")

	r = s.Resolve(Config{Modules: map[string]any{"toolbar": false}})
	assert.Equal(t, map[string]any{"toolbar": false}, r.EditorOptions().Modules)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "richbind.yaml")
	data := []byte(`
format: text
theme: bubble
readOnly: true
minLength: 3
maxLength: 10
sanitize: true
customOptions:
  - import: attributors/style/size
    whitelist: ["14px", "16px"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	s := NewService(cfg)
	r := s.Resolve(Config{})
	assert.Equal(t, core.FormatText, r.Format)
	assert.Equal(t, "bubble", r.Theme)
	assert.True(t, r.ReadOnly)
	assert.Equal(t, 3, r.MinLength)
	assert.Equal(t, 10, r.MaxLength)
	assert.True(t, r.Sanitize)
	require.Len(t, r.CustomOptions, 1)
	assert.Equal(t, "attributors/style/size", r.CustomOptions[0].Import)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unterminated"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
