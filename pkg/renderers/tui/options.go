package tui

import (
	"io"
	"log/slog"
)

// DefaultMaxAttempts bounds how many times a session re-prompts fields that
// failed validation.
const DefaultMaxAttempts = 3

// Theme captures optional prefixes the session applies when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme returns plain prefixes.
func DefaultTheme() Theme {
	return Theme{
		InfoPrefix:    "",
		ErrorPrefix:   "✗ ",
		SuccessPrefix: "✓ ",
	}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithFields replaces the prompt definitions. Names the view declares
// without a definition are asked as plain inputs.
func WithFields(fields []Field) Option {
	return func(s *Session) {
		if len(fields) > 0 {
			s.fields = append([]Field(nil), fields...)
		}
	}
}

// WithMaxAttempts sets how many submission attempts a session makes.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
