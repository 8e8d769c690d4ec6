package postalcode

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-contactform/pkg/cep"
)

type GuardFunc func(r *http.Request) error

// Outcome labels a served lookup for observers.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

type Options struct {
	RoutePath string
	CodeParam string
	// Wildcard is appended to the registered pattern for routers that need
	// an explicit catch-all, e.g. "*" for chi. net/http's ServeMux needs none.
	Wildcard string
	Guard    GuardFunc
	Lookup   cep.Lookuper
	Logger   *slog.Logger
	Observer func(Outcome)
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/cep/",
		CodeParam: "code",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/cep/"
	}
	if opts.CodeParam == "" {
		opts.CodeParam = "code"
	}
	if opts.Lookup == nil {
		opts.Lookup = cep.NewClient()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithCodeParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CodeParam = name
	}
}

func WithWildcard(suffix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Wildcard = suffix
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLookup(lookup cep.Lookuper) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Lookup = lookup
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithObserver(fn func(Outcome)) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Observer = fn
	}
}
