package responder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestResponder(t *testing.T, opts Options) *Responder {
	t.Helper()

	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func serve(s *Responder, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestIndexReturnsWelcome(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "Welcome to index pages."})

	rr := serve(s, "GET", "/")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"index":"Welcome to index pages."}` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestIndexLocalizedWelcome(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "欢迎来到首页"})

	rr := serve(s, "GET", "/")

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["index"] != "欢迎来到首页" {
		t.Fatalf("expected localized welcome, got %q", body["index"])
	}
}

func TestHealthReportsUp(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	rr := serve(s, "GET", "/health.json")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != `{"status":"UP"}` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestUnknownPathsAnswer404BodyWith200(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	for _, p := range []string{"/foo", "/health", "/INDEX", "/health.json/", "/index.html"} {
		rr := serve(s, "GET", p)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", p, rr.Code)
		}
		if got := rr.Body.String(); got != "404" {
			t.Fatalf("%s: expected body 404, got %q", p, got)
		}
	}
}

func TestQueryStringIgnored(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	plain := serve(s, "GET", "/health.json")
	withQuery := serve(s, "GET", "/health.json?x=1")

	if plain.Code != withQuery.Code || plain.Body.String() != withQuery.Body.String() {
		t.Fatalf("query string changed the response: %q vs %q", plain.Body.String(), withQuery.Body.String())
	}

	index := serve(s, "GET", "/?lang=zh")
	if !strings.HasPrefix(index.Body.String(), `{"index":`) {
		t.Fatalf("expected index body, got %q", index.Body.String())
	}
}

func TestMethodIgnored(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	get := serve(s, "GET", "/")

	for _, m := range []string{"POST", "PUT", "DELETE", "PATCH"} {
		rr := serve(s, m, "/")
		if rr.Code != get.Code || rr.Body.String() != get.Body.String() {
			t.Fatalf("%s / differs from GET /: %d %q", m, rr.Code, rr.Body.String())
		}
	}
}

func TestContentTypeOnEveryOutcome(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	for _, p := range []string{"/", "/health.json", "/nope"} {
		rr := serve(s, "GET", p)
		if ct := rr.Header().Get("Content-Type"); ct != ContentType {
			t.Fatalf("%s: expected Content-Type %q, got %q", p, ContentType, ct)
		}
	}
}

func TestNotFoundStatusOverride(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi", NotFoundStatus: http.StatusNotFound})

	rr := serve(s, "GET", "/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr.Body.String() != "404" {
		t.Fatalf("expected body 404, got %q", rr.Body.String())
	}

	// Known paths are unaffected.
	if rr := serve(s, "GET", "/health.json"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", rr.Code)
	}
}

func TestWelcomeIsJSONEscaped(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: `say "hi"`})

	rr := serve(s, "GET", "/")

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["index"] != `say "hi"` {
		t.Fatalf("unexpected welcome %q", body["index"])
	}
}

func TestEscapedPathsDoNotMatch(t *testing.T) {
	s := newTestResponder(t, Options{Welcome: "hi"})

	for _, p := range []string{"/health%2Ejson", "/%68ealth.json", "/%2F", "/health.json%3Fx=1"} {
		rr := serve(s, "GET", p)

		if got := rr.Body.String(); got != notFoundBody {
			t.Fatalf("%s: expected body 404, got %q", p, got)
		}
	}
}
