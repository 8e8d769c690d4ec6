// Package view abstracts the page a contact form lives on. The autofill and
// submission flows read and write fields, feedback and error nodes only through
// FormView, so they run the same way against a terminal session, a rendered
// HTML page or an in-memory fixture.
package view

// FieldError is a single inline validation message attached to a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormView exposes get/set access to named fields plus the error list,
// feedback line and success nodes rendered around them.
type FormView interface {
	// Value returns the current value of the named field, or "" when absent.
	Value(name string) string
	// SetValue overwrites the named field.
	SetValue(name, value string)
	// Names lists every named input in form order.
	Names() []string
	// Values snapshots every named input into a flat map.
	Values() map[string]string

	// SetFeedback replaces the lookup feedback message. "" clears it.
	SetFeedback(message string)
	Feedback() string

	// AddError attaches an inline message under field.
	AddError(field, message string)
	// ClearErrors removes every inline message.
	ClearErrors()
	Errors() []FieldError

	// AppendSuccess appends a success node to the form.
	AppendSuccess(message string)
}

// SubmitEvent models the native submission triggered by the form. Handlers
// call PreventDefault to cancel navigation.
type SubmitEvent struct {
	prevented bool
}

// PreventDefault cancels the native submission.
func (e *SubmitEvent) PreventDefault() {
	if e == nil {
		return
	}
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e != nil && e.prevented
}
