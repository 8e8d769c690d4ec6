package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-contactform/pkg/autofill"
	"github.com/goliatone/go-contactform/pkg/submit"
	"github.com/goliatone/go-contactform/pkg/view"
)

// Session drives a FormView from the terminal: it prompts every field, runs
// the postal-code autofill once the CEP prompt is answered, then submits and
// re-prompts the fields that failed validation.
type Session struct {
	driver      PromptDriver
	out         io.Writer
	autofill    *autofill.Autofiller
	submitter   *submit.Submitter
	fields      []Field
	maxAttempts int
	theme       Theme
	logger      *slog.Logger
}

// NewSession builds a Session. Without WithPromptDriver the survey driver is
// used.
func NewSession(filler *autofill.Autofiller, submitter *submit.Submitter, options ...Option) (*Session, error) {
	if filler == nil {
		return nil, errors.New("tui: autofiller is required")
	}
	if submitter == nil {
		return nil, errors.New("tui: submitter is required")
	}
	s := &Session{
		autofill:    filler,
		submitter:   submitter,
		fields:      DefaultFields(),
		maxAttempts: DefaultMaxAttempts,
		theme:       DefaultTheme(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		out := s.out
		if out == nil {
			out = os.Stdout
		}
		s.driver = NewSurveyDriver(out)
	}
	return s, nil
}

// Run prompts, autofills and submits until the submission leaves the
// validation stage or the attempts run out.
func (s *Session) Run(ctx context.Context, v view.FormView) (submit.Result, error) {
	if v == nil {
		return submit.Result{}, errors.New("tui: form view is nil")
	}
	known := make(map[string]Field, len(s.fields))
	for _, field := range s.fields {
		known[field.Name] = field
	}

	pending := v.Names()
	for attempt := 1; ; attempt++ {
		if err := s.promptFields(ctx, v, pending, known); err != nil {
			return submit.Result{}, err
		}

		event := &view.SubmitEvent{}
		result := s.submitter.Submit(ctx, v, event)
		s.logger.Debug("tui submission", "attempt", attempt, "outcome", result.Outcome, "status", result.StatusCode)
		if err := s.report(ctx, v, result); err != nil {
			return result, err
		}
		if result.Outcome != submit.OutcomeInvalid {
			return result, nil
		}
		if attempt >= s.maxAttempts {
			return result, ErrAttemptsExhausted
		}
		pending = s.retryFields(v.Names(), result.Errors)
	}
}

func (s *Session) promptFields(ctx context.Context, v view.FormView, names []string, known map[string]Field) error {
	cepField := s.autofill.Fields().CEP
	for _, name := range names {
		value, err := s.prompt(ctx, fieldFor(name, known), v.Value(name))
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", name, err)
		}
		v.SetValue(name, value)

		if name != cepField {
			continue
		}
		outcome := s.autofill.OnFocusOut(ctx, v)
		s.logger.Debug("tui autofill", "outcome", outcome)
		if feedback := strings.TrimSpace(v.Feedback()); feedback != "" {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+feedback); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) prompt(ctx context.Context, field Field, current string) (string, error) {
	message := field.Label
	if message == "" {
		message = field.Name
	}
	switch field.Kind {
	case KindSelect:
		labels := make([]string, len(field.Choices))
		def := -1
		for i, choice := range field.Choices {
			labels[i] = choice.Label
			if choice.Value == current {
				def = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: def,
			Help:         field.Help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return "", nil
		}
		return field.Choices[idx].Value, nil
	case KindTextArea:
		return s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: field.Help})
	default:
		return s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: field.Help})
	}
}

func (s *Session) report(ctx context.Context, v view.FormView, result submit.Result) error {
	for _, fe := range result.Errors {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+fe.Field+": "+fe.Message); err != nil {
			return err
		}
	}
	if result.Outcome != submit.OutcomeSent {
		return nil
	}
	lister, ok := v.(interface{ Successes() []string })
	if !ok {
		return nil
	}
	for _, message := range lister.Successes() {
		if err := s.driver.Info(ctx, s.theme.SuccessPrefix+message); err != nil {
			return err
		}
	}
	return nil
}

// retryFields returns the flagged fields in form order. The postal code and
// the address fields it fills are asked together.
func (s *Session) retryFields(names []string, errs []view.FieldError) []string {
	flagged := make(map[string]bool, len(errs))
	for _, fe := range errs {
		flagged[fe.Field] = true
	}
	fields := s.autofill.Fields()
	group := []string{fields.CEP, fields.Street, fields.Neighborhood, fields.City, fields.State}
	for _, name := range group {
		if flagged[name] {
			for _, member := range group {
				flagged[member] = true
			}
			break
		}
	}
	out := make([]string, 0, len(flagged))
	for _, name := range names {
		if flagged[name] {
			out = append(out, name)
		}
	}
	return out
}
