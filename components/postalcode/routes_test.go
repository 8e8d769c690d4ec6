package postalcode

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/api"); got != "/api/cep/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("api"); got != "/api/cep/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/api/", WithRoutePath("postal")); got != "/api/postal/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/cep/" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/api", WithLookup(stubLookup(nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/api/cep/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern+"01310000", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Wildcard(t *testing.T) {
	mux := &recordingMux{}
	pattern, err := New(WithWildcard("*"), WithLookup(stubLookup(nil))).RegisterRoutes(mux, "/api")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/api/cep/*" || mux.pattern != pattern {
		t.Fatalf("unexpected pattern %q (mux saw %q)", pattern, mux.pattern)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/api"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

type recordingMux struct {
	pattern string
}

func (m *recordingMux) Handle(pattern string, _ http.Handler) {
	m.pattern = pattern
}
