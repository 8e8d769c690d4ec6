package action

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const contactDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Contact", "version": "1.0.0"},
  "servers": [{"url": "https://api.example.com/v1"}],
  "paths": {
    "/contact": {
      "post": {
        "operationId": "sendContact",
        "responses": {"200": {"description": "ok"}}
      },
      "get": {
        "operationId": "listContacts",
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/feedback": {
      "servers": [{"url": "https://feedback.example.com/"}],
      "post": {
        "operationId": "sendFeedback",
        "responses": {"204": {"description": "accepted"}}
      }
    }
  }
}`

func TestFromDocument_ResolvesPostOperation(t *testing.T) {
	target, err := FromDocument(context.Background(), []byte(contactDocument), "sendContact", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.URL != "https://api.example.com/v1/contact" {
		t.Fatalf("unexpected url: %s", target.URL)
	}
	if target.Method != http.MethodPost || target.OperationID != "sendContact" {
		t.Fatalf("unexpected target: %#v", target)
	}
}

func TestFromDocument_PathServerWins(t *testing.T) {
	target, err := FromDocument(context.Background(), []byte(contactDocument), "sendFeedback", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.URL != "https://feedback.example.com/feedback" {
		t.Fatalf("unexpected url: %s", target.URL)
	}
}

func TestFromDocument_ServerOverride(t *testing.T) {
	target, err := FromDocument(context.Background(), []byte(contactDocument), "sendContact", "http://localhost:8080")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.URL != "http://localhost:8080/contact" {
		t.Fatalf("unexpected url: %s", target.URL)
	}
}

func TestFromDocument_Errors(t *testing.T) {
	cases := map[string]string{
		"listContacts": "want POST",
		"missing":      "not found",
		"":             "operation id is required",
	}
	for opID, want := range cases {
		_, err := FromDocument(context.Background(), []byte(contactDocument), opID, "")
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("operation %q: expected error containing %q, got %v", opID, want, err)
		}
	}
}

func TestResolve_LiteralURLWins(t *testing.T) {
	target, err := Resolve(context.Background(), Source{URL: " https://example.com/contact ", OpenAPI: "ignored.json"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.URL != "https://example.com/contact" {
		t.Fatalf("unexpected url: %s", target.URL)
	}
}

func TestResolve_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := os.WriteFile(path, []byte(contactDocument), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}
	target, err := Resolve(context.Background(), Source{OpenAPI: path, OperationID: "sendContact"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target.URL != "https://api.example.com/v1/contact" {
		t.Fatalf("unexpected url: %s", target.URL)
	}
}

func TestResolve_Empty(t *testing.T) {
	if !(Source{}).Empty() {
		t.Fatalf("expected empty source")
	}
	if _, err := Resolve(context.Background(), Source{}); err == nil {
		t.Fatalf("expected error for empty source")
	}
}
