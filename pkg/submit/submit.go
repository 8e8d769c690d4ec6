package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-contactform/pkg/cpf"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/view"
)

// maxResponseBytes caps how much of a rejection body is inspected for
// field errors.
const maxResponseBytes = 64 << 10

// Outcome reports how a submission attempt ended.
type Outcome string

const (
	// OutcomeInvalid means validation flagged at least one field and no
	// request was sent.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeSent means the endpoint answered with a 2xx status.
	OutcomeSent Outcome = "sent"
	// OutcomeRejected means the endpoint answered with a non-2xx status.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the request could not complete.
	OutcomeFailed Outcome = "failed"
)

// Result summarises a submission attempt.
type Result struct {
	Outcome    Outcome
	Errors     []view.FieldError
	StatusCode int
	// Err carries the transport failure for OutcomeFailed.
	Err error
}

// Submitter runs the validate-then-post flow against a FormView.
type Submitter struct {
	action            string
	http              *http.Client
	required          []string
	cpfField          string
	feedbackField     string
	messages          Messages
	hidden            []render.HiddenField
	navigateOnSuccess bool
	surfaceFailures   bool
	logger            *slog.Logger
	observe           func(Outcome)
}

// New builds a Submitter posting to action, which must be an absolute URL.
func New(action string, options ...Option) (*Submitter, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, errors.New("submit: action URL is required")
	}
	parsed, err := url.Parse(action)
	if err != nil {
		return nil, fmt.Errorf("submit: parse action URL: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("submit: action URL %q must be absolute", action)
	}

	s := &Submitter{
		action:            action,
		http:              http.DefaultClient,
		required:          append([]string(nil), DefaultRequiredFields...),
		cpfField:          "cpf",
		feedbackField:     "mensagem",
		messages:          DefaultMessages(),
		navigateOnSuccess: true,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Action reports the URL submissions are posted to.
func (s *Submitter) Action() string {
	return s.action
}

// RequiredFields reports the fields checked for blank values.
func (s *Submitter) RequiredFields() []string {
	return append([]string(nil), s.required...)
}

// Validate clears previous errors and runs the required-field and CPF checks,
// attaching one inline error per problem. It reports whether anything was
// flagged.
func (s *Submitter) Validate(v view.FormView) bool {
	v.ClearErrors()

	flagged := false
	for _, field := range s.required {
		if strings.TrimSpace(v.Value(field)) == "" {
			v.AddError(field, fmt.Sprintf(s.messages.Required, field))
			flagged = true
		}
	}

	// Checked independently of emptiness: a blank CPF carries both errors.
	if s.cpfField != "" && !cpf.Valid(v.Value(s.cpfField)) {
		v.AddError(s.cpfField, s.messages.CPF)
		flagged = true
	}
	return flagged
}

// Payload serializes every named input, plus hidden fields, into the flat
// object that is posted.
func (s *Submitter) Payload(v view.FormView) map[string]string {
	values := v.Values()
	if len(s.hidden) == 0 {
		return values
	}
	return render.MergeHiddenFields(values, s.hidden...)
}

// Submit runs one attempt. The event is cancelled when validation fails, when
// the endpoint rejects the submission, when navigation on success is disabled,
// and, with surfaced failures, when the request fails.
func (s *Submitter) Submit(ctx context.Context, v view.FormView, event *view.SubmitEvent) Result {
	if s.Validate(v) {
		event.PreventDefault()
		return s.finish(Result{Outcome: OutcomeInvalid, Errors: v.Errors()})
	}

	status, body, err := s.post(ctx, s.Payload(v))
	if err != nil {
		s.logger.Error("contact form submission failed", "action", s.action, "error", err)
		if s.surfaceFailures {
			v.AddError(s.feedbackField, s.messages.Failure)
			event.PreventDefault()
		}
		return s.finish(Result{Outcome: OutcomeFailed, Errors: v.Errors(), Err: err})
	}

	if status < 200 || status > 299 {
		s.logger.Warn("contact form submission rejected", "action", s.action, "status", status)
		s.applyRejection(v, body)
		event.PreventDefault()
		return s.finish(Result{Outcome: OutcomeRejected, Errors: v.Errors(), StatusCode: status})
	}

	v.AppendSuccess(s.messages.Success)
	if !s.navigateOnSuccess {
		event.PreventDefault()
	}
	s.logger.Info("contact form submitted", "action", s.action, "status", status)
	return s.finish(Result{Outcome: OutcomeSent, StatusCode: status})
}

func (s *Submitter) post(ctx context.Context, payload map[string]string) (int, []byte, error) {
	if ctx == nil {
		return 0, nil, errors.New("submit: context is required")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.action, bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("submit: post: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		// status decides the outcome; the body only adds field detail
		s.logger.Debug("contact form response body unreadable", "error", err)
	}
	return res.StatusCode, body, nil
}

// applyRejection attaches the generic failure message to the feedback field,
// followed by any form-level messages the endpoint returned, then the field
// errors for inputs on the form.
func (s *Submitter) applyRejection(v view.FormView, body []byte) {
	mapping := render.MapErrorPayload(v.Names(), render.DecodeErrorPayload(body))
	if mapping.Empty() {
		v.AddError(s.feedbackField, s.messages.Failure)
		return
	}

	for _, message := range render.MergeFormErrors([]string{s.messages.Failure}, mapping.Form...) {
		v.AddError(s.feedbackField, message)
	}
	for _, field := range v.Names() {
		for _, message := range mapping.Fields[field] {
			v.AddError(field, message)
		}
	}
}

func (s *Submitter) finish(result Result) Result {
	if s.observe != nil {
		s.observe(result.Outcome)
	}
	return result
}
