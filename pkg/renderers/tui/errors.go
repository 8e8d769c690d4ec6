package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when the form still fails validation
	// after the configured number of attempts.
	ErrAttemptsExhausted = errors.New("tui: submission attempts exhausted")
)
