package render

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by the form's input names.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// and dotted paths wrapped in "body", "payload" or "data") onto the given
// field names. Unknown paths are treated as form-level errors so messages are
// not lost.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		field, formLevel := mapErrorPath(rawPath, known)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[field] = append(mapping.Fields[field], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// errorEnvelope accepts the shapes submission endpoints commonly answer with:
// {"errors": {"email": ["..."]}}, {"errors": {"email": "..."}},
// {"errors": ["..."]} and {"message": "..."}.
type errorEnvelope struct {
	Errors  json.RawMessage `json:"errors"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// DecodeErrorPayload extracts path → messages from a JSON response body.
// Bodies that are empty or not JSON yield nil. Form-level messages are keyed
// by "form".
func DecodeErrorPayload(body []byte) map[string][]string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}

	out := make(map[string][]string)
	if len(env.Errors) > 0 {
		var byField map[string]json.RawMessage
		var list []string
		switch {
		case json.Unmarshal(env.Errors, &byField) == nil:
			for path, raw := range byField {
				out[path] = append(out[path], decodeMessages(raw)...)
			}
		case json.Unmarshal(env.Errors, &list) == nil:
			out["form"] = append(out["form"], list...)
		}
	}
	if msg := strings.TrimSpace(env.Message); msg != "" {
		out["form"] = append(out["form"], msg)
	}
	if msg := strings.TrimSpace(env.Error); msg != "" {
		out["form"] = append(out["form"], msg)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeMessages(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := dropWrapperSegments(stripNumericSegments(parsePathSegments(trimmed)))
	if len(segments) == 0 {
		return "", true
	}

	// Flat forms only have top-level names, so the first remaining segment
	// decides; "nome.0" and "/body/nome" both land on "nome".
	if _, ok := known[segments[0]]; ok {
		return segments[0], false
	}
	return "", true
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
		"fields":     {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}

	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
