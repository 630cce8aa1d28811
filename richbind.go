// Package richbind provides a high-level façade over the binder, loader and
// configuration abstractions for embedding a rich-text engine behind
// declarative components. Most applications interact with this package by:
//  1. Creating a Richbind via New() (optionally supplying global defaults,
//     a custom engine factory or a structured logger)
//  2. Constructing binders (NewEditable, NewView, NewHTMLView) that share the
//     façade's configuration service and memoized engine loader
//  3. Mounting the binders on their hosts and wiring change subscriptions
//
// The façade keeps setup ergonomics concise while the binders do the actual
// lifecycle work. All defaults are safe for local development and testing;
// production embeddings typically supply a real engine factory and a
// structured logger.
package richbind

import (
	"github.com/hupe1980/richbind/binder"
	"github.com/hupe1980/richbind/config"
	"github.com/hupe1980/richbind/loader"
	"github.com/hupe1980/richbind/logging"
)

// Options configures the Richbind instance.
type Options struct {
	// Defaults is the global configuration applied to every binder created
	// through this façade. Per-binder overrides still win field by field.
	Defaults config.Config

	// EngineFactory produces the engine module on first acquisition. Nil
	// selects the in-memory reference engine.
	EngineFactory loader.EngineFactory

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Richbind is the high-level façade aggregating the configuration service
// and the shared engine loader. One instance serves any number of binders;
// the engine module is acquired once and memoized across all of them.
type Richbind struct {
	opts    Options
	service *config.Service
	loader  *loader.Loader
}

// New creates a new Richbind instance with optional overrides.
func New(optFns ...func(o *Options)) *Richbind {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	loaderOpts := []loader.Option{loader.WithLogger(opts.Logger)}
	if opts.EngineFactory != nil {
		loaderOpts = append(loaderOpts, loader.WithFactory(opts.EngineFactory))
	}

	return &Richbind{
		opts:    opts,
		service: config.NewService(opts.Defaults),
		loader:  loader.New(loaderOpts...),
	}
}

// Service returns the configuration service holding the global defaults.
func (r *Richbind) Service() *config.Service { return r.service }

// Loader returns the shared engine loader.
func (r *Richbind) Loader() *loader.Loader { return r.loader }

// NewEditable constructs an editable binder wired to the façade's service
// and loader. Additional options are applied after the wiring, so callers
// may still override the configuration.
func (r *Richbind) NewEditable(opts ...binder.Option) *binder.Editable {
	return binder.NewEditable(r.binderOptions(opts)...)
}

// NewView constructs a read-only binder wired to the façade's service and
// loader.
func (r *Richbind) NewView(opts ...binder.Option) *binder.View {
	return binder.NewView(r.binderOptions(opts)...)
}

// NewHTMLView constructs a stateless HTML projection using the façade's
// configuration defaults.
func (r *Richbind) NewHTMLView(opts ...binder.Option) *binder.HTMLView {
	return binder.NewHTMLView(r.binderOptions(opts)...)
}

func (r *Richbind) binderOptions(opts []binder.Option) []binder.Option {
	base := []binder.Option{
		binder.WithService(r.service),
		binder.WithLoader(r.loader),
		binder.WithLogger(r.opts.Logger),
	}
	return append(base, opts...)
}
