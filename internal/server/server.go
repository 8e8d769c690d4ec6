// Package server wires the contact page, the postal-code endpoint, the JSON
// receiver and the metrics endpoint onto a chi router.
//
// The page works without client scripts: the lookup button posts the form
// back with intent=lookup and the server runs the focus-out flow before
// re-rendering. A submit posts with intent=submit; when the submission does
// not cancel navigation the browser is redirected (303) so a reload does not
// post twice.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-contactform/components/postalcode"
	"github.com/goliatone/go-contactform/internal/metrics"
	"github.com/goliatone/go-contactform/pkg/autofill"
	"github.com/goliatone/go-contactform/pkg/cep"
	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/submit"
)

const (
	// SentParam marks the page a successful submission redirects to.
	SentParam = "enviado"

	defaultContactPath = "/contact"
	defaultCEPBasePath = "/api"
	defaultTimeout     = 30 * time.Second
)

// Dependencies are the collaborators the server routes to.
type Dependencies struct {
	Renderer  *html.Renderer
	Autofill  *autofill.Autofiller
	Submitter *submit.Submitter
	Lookup    cep.Lookuper
	Metrics   *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFields sets the named inputs of the page in form order.
func WithFields(names ...string) Option {
	return func(s *Server) {
		if len(names) > 0 {
			s.fields = append([]string(nil), names...)
		}
	}
}

// WithHidden sets hidden inputs rendered into the page.
func WithHidden(hidden map[string]string) Option {
	return func(s *Server) {
		s.hidden = hidden
	}
}

// WithContactPath sets where the JSON receiver is mounted. An empty path
// disables the receiver.
func WithContactPath(path string) Option {
	return func(s *Server) {
		s.contactPath = path
	}
}

// WithCEPBasePath sets the base path of the postal-code endpoint. An empty
// path disables it.
func WithCEPBasePath(path string) Option {
	return func(s *Server) {
		s.cepBasePath = path
	}
}

// WithMetricsEndpoint toggles /metrics.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *Server) {
		s.exposeMetrics = enabled
	}
}

// WithRequestTimeout bounds each request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithSuccessMessage sets the message shown after a redirect that follows a
// successful submission.
func WithSuccessMessage(message string) Option {
	return func(s *Server) {
		if message != "" {
			s.successMessage = message
		}
	}
}

// Server serves the contact form.
type Server struct {
	deps           Dependencies
	logger         *slog.Logger
	fields         []string
	hidden         map[string]string
	contactPath    string
	cepBasePath    string
	exposeMetrics  bool
	timeout        time.Duration
	successMessage string
}

// New validates deps and applies options.
func New(deps Dependencies, options ...Option) (*Server, error) {
	if deps.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if deps.Autofill == nil {
		return nil, errors.New("server: autofiller is required")
	}
	if deps.Submitter == nil {
		return nil, errors.New("server: submitter is required")
	}
	s := &Server{
		deps:           deps,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		fields:         append([]string(nil), submit.DefaultRequiredFields...),
		contactPath:    defaultContactPath,
		cepBasePath:    defaultCEPBasePath,
		exposeMetrics:  true,
		timeout:        defaultTimeout,
		successMessage: submit.DefaultMessages().Success,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Router builds the HTTP handler.
func (s *Server) Router() (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/", s.handlePage)
	r.Post("/", s.handlePost)

	if s.contactPath != "" {
		r.Post(s.contactPath, s.handleReceive)
	}
	if s.cepBasePath != "" {
		lookup := s.deps.Lookup
		if lookup == nil {
			lookup = cep.NewClient()
		}
		pattern, err := postalcode.RegisterRoutes(r, s.cepBasePath,
			postalcode.WithLookup(lookup),
			postalcode.WithWildcard("*"),
			postalcode.WithLogger(s.logger),
			postalcode.WithObserver(s.deps.Metrics.ObserveLookup),
		)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("postal-code endpoint mounted", "pattern", pattern)
	}
	if s.exposeMetrics && s.deps.Metrics != nil {
		r.Handle("/metrics", s.deps.Metrics.Handler())
	}
	return r, nil
}

// LookupPath is the postal-code endpoint the page advertises, or "" when the
// endpoint is disabled.
func (s *Server) LookupPath() string {
	if s.cepBasePath == "" {
		return ""
	}
	return postalcode.MountPath(s.cepBasePath)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
