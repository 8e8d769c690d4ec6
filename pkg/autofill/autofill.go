// Package autofill fills the address fields of a form from a postal-code
// lookup when the postal-code field loses focus.
//
// The dependent fields are always cleared before a lookup begins, so a slow or
// failed lookup never leaves a stale address visible. In-flight lookups are not
// cancelled: when two lookups overlap, whichever resolves last writes the
// fields.
package autofill

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goliatone/go-contactform/pkg/cep"
	"github.com/goliatone/go-contactform/pkg/view"
)

// Outcome reports how a focus-out ended.
type Outcome string

const (
	OutcomeCleared  Outcome = "cleared"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
	OutcomeFilled   Outcome = "filled"
)

// Fields names the inputs the flow reads and writes.
type Fields struct {
	CEP          string
	Street       string
	Neighborhood string
	City         string
	State        string
}

// DefaultFields returns the identifiers used by the contact page.
func DefaultFields() Fields {
	return Fields{
		CEP:          "cep",
		Street:       "endereco",
		Neighborhood: "bairro",
		City:         "cidade",
		State:        "estado",
	}
}

// Messages holds the feedback texts shown in the feedback element.
type Messages struct {
	Invalid  string
	NotFound string
	Failed   string
}

// DefaultMessages returns the Portuguese texts of the contact page.
func DefaultMessages() Messages {
	return Messages{
		Invalid:  "CEP incorreto!",
		NotFound: "CEP não encontrado!",
		Failed:   "Erro ao buscar o CEP. Por favor, tente novamente mais tarde.",
	}
}

// Option configures an Autofiller.
type Option func(*Autofiller)

// WithFields overrides the field identifiers. Empty entries keep defaults.
func WithFields(fields Fields) Option {
	return func(a *Autofiller) {
		a.fields = mergeFields(a.fields, fields)
	}
}

// WithMessages overrides feedback texts. Empty entries keep defaults.
func WithMessages(messages Messages) Option {
	return func(a *Autofiller) {
		if messages.Invalid != "" {
			a.messages.Invalid = messages.Invalid
		}
		if messages.NotFound != "" {
			a.messages.NotFound = messages.NotFound
		}
		if messages.Failed != "" {
			a.messages.Failed = messages.Failed
		}
	}
}

// WithLogger sets the logger used for lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Autofiller) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver registers a callback invoked with every outcome.
func WithObserver(fn func(Outcome)) Option {
	return func(a *Autofiller) {
		a.observe = fn
	}
}

// Autofiller runs the focus-out flow against a FormView.
type Autofiller struct {
	lookup   cep.Lookuper
	fields   Fields
	messages Messages
	logger   *slog.Logger
	observe  func(Outcome)
}

// New builds an Autofiller backed by lookup.
func New(lookup cep.Lookuper, options ...Option) (*Autofiller, error) {
	if lookup == nil {
		return nil, errors.New("autofill: lookup is required")
	}
	a := &Autofiller{
		lookup:   lookup,
		fields:   DefaultFields(),
		messages: DefaultMessages(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a, nil
}

// Fields returns the identifiers in use.
func (a *Autofiller) Fields() Fields {
	return a.fields
}

// OnFocusOut reads the postal code from v and updates the dependent fields and
// feedback element. The only suspension point is the lookup call.
func (a *Autofiller) OnFocusOut(ctx context.Context, v view.FormView) Outcome {
	a.clear(v)

	code := v.Value(a.fields.CEP)
	if code == "" {
		v.SetFeedback("")
		return a.report(OutcomeCleared)
	}
	if !cep.ValidLength(code) {
		v.SetFeedback(a.messages.Invalid)
		return a.report(OutcomeInvalid)
	}

	addr, err := a.lookup.Lookup(ctx, code)
	switch {
	case errors.Is(err, cep.ErrNotFound):
		v.SetFeedback(a.messages.NotFound)
		return a.report(OutcomeNotFound)
	case err != nil:
		a.logger.Warn("cep lookup failed", "cep", code, "category", string(cep.Category(err)), "error", err)
		v.SetFeedback(a.messages.Failed)
		return a.report(OutcomeFailed)
	}

	a.fill(v, addr)
	v.SetFeedback("")
	a.logger.Debug("cep lookup filled address", "cep", code, "city", addr.City, "uf", addr.State)
	return a.report(OutcomeFilled)
}

func (a *Autofiller) clear(v view.FormView) {
	v.SetValue(a.fields.Street, "")
	v.SetValue(a.fields.Neighborhood, "")
	v.SetValue(a.fields.City, "")
	v.SetValue(a.fields.State, "")
}

func (a *Autofiller) fill(v view.FormView, addr cep.Address) {
	v.SetValue(a.fields.Street, addr.Street)
	v.SetValue(a.fields.Neighborhood, addr.Neighborhood)
	v.SetValue(a.fields.City, addr.City)
	v.SetValue(a.fields.State, addr.State)
}

func (a *Autofiller) report(outcome Outcome) Outcome {
	if a.observe != nil {
		a.observe(outcome)
	}
	return outcome
}

func mergeFields(base, override Fields) Fields {
	if override.CEP != "" {
		base.CEP = override.CEP
	}
	if override.Street != "" {
		base.Street = override.Street
	}
	if override.Neighborhood != "" {
		base.Neighborhood = override.Neighborhood
	}
	if override.City != "" {
		base.City = override.City
	}
	if override.State != "" {
		base.State = override.State
	}
	return base
}
