package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/cep"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contactform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCPFCmd(t *testing.T) {
	out, err := execute(t, "cpf", "11144477735", "529.982.247-25")
	if err != nil {
		t.Fatalf("cpf: %v", err)
	}
	want := "111.444.777-35\tvalid\n529.982.247-25\tvalid\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCPFCmd_InvalidFails(t *testing.T) {
	out, err := execute(t, "cpf", "11144477735", "11111111111")
	if !errors.Is(err, errInvalidCPF) {
		t.Fatalf("expected errInvalidCPF, got %v", err)
	}
	if !strings.Contains(out, "11111111111\tinvalid") {
		t.Fatalf("expected invalid line, got %q", out)
	}
}

func TestLookupCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01001000/json/":
			_, _ = w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
		default:
			_, _ = w.Write([]byte(`{"erro": true}`))
		}
	}))
	defer srv.Close()
	path := writeConfig(t, "lookup:\n  base_url: "+srv.URL+"\n")

	out, err := execute(t, "lookup", "--config", path, "01001000")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var addr cep.Address
	if err := json.Unmarshal([]byte(out), &addr); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if addr.City != "São Paulo" || addr.State != "SP" {
		t.Fatalf("unexpected address %+v", addr)
	}

	if _, err := execute(t, "lookup", "--config", path, "99999999"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := execute(t, "lookup", "--config", path, "123"); err == nil {
		t.Fatal("expected length error")
	}
}

func TestRenderCmd_WritesFile(t *testing.T) {
	path := writeConfig(t, `
form:
  action:
    url: https://example.com/contact
  hidden:
    _csrf: abc
theme:
  name: acme
  stylesheet: /static/acme.css
  tokens:
    primary: "#123456"
`)
	output := filepath.Join(t.TempDir(), "contact.html")

	if _, err := execute(t, "render", "--config", path, "--output", output); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	page := string(data)
	for _, want := range []string{
		`action="https://example.com/contact"`,
		`name="_csrf" value="abc"`,
		`href="/static/acme.css"`,
		`--primary: #123456;`,
		`name="mensagem"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderCmd_CSRFTokenBecomesHiddenInput(t *testing.T) {
	path := writeConfig(t, `
form:
  csrf_field: csrf_token
  csrf_token: tok-1
  hidden:
    origem: site
`)
	out, err := execute(t, "render", "--config", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<input type="hidden" name="csrf_token" value="tok-1">`,
		`<input type="hidden" name="origem" value="site">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestCommands_MissingConfig(t *testing.T) {
	if _, err := execute(t, "render", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}
