package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-contactform/pkg/render"
)

var contactFields = []string{"nome", "cpf", "email", "mensagem"}

func TestMapErrorPayload_PathVariants(t *testing.T) {
	payload := map[string][]string{
		"/body/nome":              {"Nome obrigatório"},
		"body.email":              {" Email inválido ", "Email inválido"},
		"$.data.cpf[0]":           {"CPF inválido"},
		"non_field_errors":        {"Falha geral"},
		"request/body/unknown":    {"Campo desconhecido"},
		"mensagem":                {"   "},
		"#/properties/irrelevant": {"Schema issue"},
	}

	mapped := render.MapErrorPayload(contactFields, payload)

	wantFields := map[string][]string{
		"nome":  {"Nome obrigatório"},
		"email": {"Email inválido"},
		"cpf":   {"CPF inválido"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Falha geral", "Campo desconhecido", "Schema issue"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(contactFields, nil)
	if !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %#v", mapped)
	}
}

func TestDecodeErrorPayload(t *testing.T) {
	cases := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "field map with lists",
			body: `{"errors": {"email": ["Email inválido"], "nome": "Nome obrigatório"}}`,
			want: map[string][]string{"email": {"Email inválido"}, "nome": {"Nome obrigatório"}},
		},
		{
			name: "list of form errors",
			body: `{"errors": ["Tente novamente"]}`,
			want: map[string][]string{"form": {"Tente novamente"}},
		},
		{
			name: "message only",
			body: `{"message": "Serviço indisponível"}`,
			want: map[string][]string{"form": {"Serviço indisponível"}},
		},
		{
			name: "not json",
			body: `<html>502</html>`,
			want: nil,
		},
		{
			name: "empty",
			body: ``,
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render.DecodeErrorPayload([]byte(tc.body))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merged errors mismatch (-want +got):\n%s", diff)
	}
}
