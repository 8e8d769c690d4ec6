package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/cep"
)

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
lookup:
  base_url: " http://localhost:9999 "
form:
  action:
    url: https://forms.example.com/contact
  navigate_on_success: false
  surface_failures: true
  hidden:
    _csrf: token
server:
  addr: ":9090"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Lookup.BaseURL != "http://localhost:9999" {
		t.Fatalf("unexpected base url %q", cfg.Lookup.BaseURL)
	}
	if cfg.Form.Action.URL != "https://forms.example.com/contact" {
		t.Fatalf("unexpected action %q", cfg.Form.Action.URL)
	}
	if cfg.Form.NavigateOnSuccess() {
		t.Fatalf("expected navigation disabled")
	}
	if !cfg.Form.SurfaceFailures {
		t.Fatalf("expected surfaced failures")
	}
	if diff := cmp.Diff(DefaultFields(), cfg.Form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if cfg.Form.Hidden["_csrf"] != "token" {
		t.Fatalf("expected hidden csrf field, got %#v", cfg.Form.Hidden)
	}
	if cfg.Form.CSRFField != "_csrf" || cfg.Form.CSRFToken != "" {
		t.Fatalf("unexpected csrf settings %q=%q", cfg.Form.CSRFField, cfg.Form.CSRFToken)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.ContactPath != "/contact" {
		t.Fatalf("unexpected server config %#v", cfg.Server)
	}
}

func TestDefault_MatchesContactPage(t *testing.T) {
	cfg := Default()
	if cfg.Lookup.BaseURL != cep.DefaultBaseURL {
		t.Fatalf("unexpected lookup base %q", cfg.Lookup.BaseURL)
	}
	if !cfg.Form.NavigateOnSuccess() {
		t.Fatalf("expected navigation on success by default")
	}
	if cfg.Form.SurfaceFailures {
		t.Fatalf("expected silent failures by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if (Form{}).NavigateOnSuccess() != true {
		t.Fatalf("expected unset navigation to default to true")
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"undeclared required": "form:\n  required: [nome, apelido]\n",
		"undeclared cpf":      "form:\n  cpf_field: documento\n",
		"missing action":      "form:\n  action:\n    url: \"\"\n",
		"openapi without op":  "form:\n  action:\n    url: \"\"\n    openapi: spec.yaml\n",
		"empty fields":        "form:\n  fields: []\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("form: [unterminated"))
	if err == nil || !strings.Contains(err.Error(), "config: decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound for explicit missing path, got %v", err)
	}
}
