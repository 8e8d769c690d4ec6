package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
	"github.com/goliatone/go-contactform/pkg/view"
)

const (
	intentLookup = "lookup"
	intentSubmit = "submit"

	maxFormBytes = 64 << 10
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v := view.NewMemory(s.fields...)
	if r.URL.Query().Get(SentParam) != "" {
		v.AppendSuccess(s.successMessage)
	}
	s.renderPage(w, r, v, http.StatusOK)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.WarnContext(ctx, "invalid form post", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := view.NewMemoryFrom(s.fields, s.formValues(r.PostForm))

	switch r.PostForm.Get(html.DefaultIntentField) {
	case intentLookup:
		outcome := s.deps.Autofill.OnFocusOut(ctx, v)
		s.logger.DebugContext(ctx, "autofill", "outcome", outcome)
		s.renderPage(w, r, v, http.StatusOK)
	default:
		event := &view.SubmitEvent{}
		result := s.deps.Submitter.Submit(ctx, v, event)
		if event.DefaultPrevented() {
			s.renderPage(w, r, v, http.StatusOK)
			return
		}
		// Navigation proceeds: redirect instead of re-rendering the post.
		target := "/"
		if result.Err == nil {
			target = "/?" + url.Values{SentParam: []string{"1"}}.Encode()
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// formValues keeps only the declared inputs so the intent button and any
// unexpected keys never reach the submitted payload.
func (s *Server) formValues(form url.Values) map[string]string {
	out := make(map[string]string, len(s.fields))
	for _, name := range s.fields {
		out[name] = form.Get(name)
	}
	return out
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, v view.FormView, status int) {
	ctx := r.Context()
	body, err := s.deps.Renderer.Render(ctx, v, html.RenderOptions{
		Action:      "/",
		LookupPath:  s.LookupPath(),
		Hidden:      s.hidden,
		IntentField: html.DefaultIntentField,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "render contact page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.deps.Renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// handleReceive accepts the JSON payload the submitter posts. It re-runs the
// same validation and answers 422 with field errors when it fails.
func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.logger.WarnContext(ctx, "invalid contact payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	v := view.NewMemoryFrom(s.fields, payload)
	if s.deps.Submitter.Validate(v) {
		errs := make(map[string][]string)
		for _, fe := range v.Errors() {
			errs[fe.Field] = append(errs[fe.Field], fe.Message)
		}
		s.logger.InfoContext(ctx, "contact payload rejected", "request_id", middleware.GetReqID(ctx), "fields", len(errs))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	s.deps.Metrics.IncrementReceived()
	s.logger.InfoContext(ctx, "contact payload received",
		"request_id", middleware.GetReqID(ctx),
		"fields", len(payload),
	)
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
