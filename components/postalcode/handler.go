package postalcode

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-contactform/pkg/cep"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type addressResponse struct {
	Data cep.Address `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	report := func(outcome Outcome) {
		if opts.Observer != nil {
			opts.Observer(outcome)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		code := codeFromRequest(r, opts)
		if !cep.ValidLength(code) {
			report(OutcomeInvalid)
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "postal code must have 8 characters"})
			return
		}

		addr, err := opts.Lookup.Lookup(r.Context(), code)
		switch {
		case errors.Is(err, cep.ErrNotFound):
			report(OutcomeNotFound)
			writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "postal code not found"})
			return
		case err != nil:
			logger.Warn("postal code lookup failed", "cep", code, "error", err)
			report(OutcomeFailed)
			writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: "postal code lookup failed"})
			return
		}

		report(OutcomeFound)
		writeJSON(w, r, http.StatusOK, addressResponse{Data: addr})
	})
}

// codeFromRequest prefers the query parameter, then the path segment after
// the route.
func codeFromRequest(r *http.Request, opts Options) string {
	if code := strings.TrimSpace(r.URL.Query().Get(opts.CodeParam)); code != "" {
		return code
	}
	route := "/" + strings.Trim(opts.RoutePath, "/") + "/"
	idx := strings.LastIndex(r.URL.Path, route)
	if idx < 0 {
		return ""
	}
	rest := strings.Trim(r.URL.Path[idx+len(route):], "/")
	rest = strings.TrimSuffix(rest, "/json")
	return rest
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
