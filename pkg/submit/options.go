package submit

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-contactform/pkg/render"
)

// DefaultRequiredFields lists the inputs that must be non-blank.
var DefaultRequiredFields = []string{
	"nome", "cpf", "idade", "aniversario", "sexo", "email", "cep",
	"endereco", "bairro", "numero", "cidade", "estado", "mensagem",
}

// Messages holds the user facing texts attached by the submitter. Required is
// a format string receiving the field identifier.
type Messages struct {
	Required string
	CPF      string
	Success  string
	Failure  string
}

// DefaultMessages returns the Portuguese texts of the contact page.
func DefaultMessages() Messages {
	return Messages{
		Required: "Por favor, preencha o campo %s.",
		CPF:      "CPF inválido. Por favor, insira um CPF válido.",
		Success:  "Mensagem enviada!",
		Failure:  "Não foi possível enviar sua mensagem. Por favor, tente novamente mais tarde.",
	}
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithHTTPClient injects the client used for the POST.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.http = client
		}
	}
}

// WithRequiredFields replaces the required field list.
func WithRequiredFields(fields ...string) Option {
	return func(s *Submitter) {
		out := make([]string, 0, len(fields))
		for _, field := range fields {
			if trimmed := strings.TrimSpace(field); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		s.required = out
	}
}

// WithCPFField names the input validated with the CPF checksum. An empty
// name disables the check.
func WithCPFField(name string) Option {
	return func(s *Submitter) {
		s.cpfField = strings.TrimSpace(name)
	}
}

// WithFeedbackField names the input that receives the generic failure
// message.
func WithFeedbackField(name string) Option {
	return func(s *Submitter) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.feedbackField = trimmed
		}
	}
}

// WithMessages overrides texts. Empty entries keep defaults.
func WithMessages(messages Messages) Option {
	return func(s *Submitter) {
		if messages.Required != "" {
			s.messages.Required = messages.Required
		}
		if messages.CPF != "" {
			s.messages.CPF = messages.CPF
		}
		if messages.Success != "" {
			s.messages.Success = messages.Success
		}
		if messages.Failure != "" {
			s.messages.Failure = messages.Failure
		}
	}
}

// WithHiddenFields merges hidden inputs (CSRF tokens and similar) into every
// payload. Hidden values win over visible inputs with the same name.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(s *Submitter) {
		s.hidden = append(s.hidden, fields...)
	}
}

// WithNavigateOnSuccess decides whether the native submission proceeds after
// a successful POST. Defaults to true.
func WithNavigateOnSuccess(navigate bool) Option {
	return func(s *Submitter) {
		s.navigateOnSuccess = navigate
	}
}

// WithSurfaceFailures shows the generic failure message, and cancels the
// native submission, when the POST fails in transport. Defaults to false:
// such failures are only logged.
func WithSurfaceFailures(surface bool) Option {
	return func(s *Submitter) {
		s.surfaceFailures = surface
	}
}

// WithLogger sets the logger used for failed attempts.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers a callback invoked with every outcome.
func WithObserver(fn func(Outcome)) Option {
	return func(s *Submitter) {
		s.observe = fn
	}
}
