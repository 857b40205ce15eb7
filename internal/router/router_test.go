// internal/router/router_test.go
//
// Dispatch, 404, 405 + Allow, and path-parameter tests over httptest.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oakharbor/storefront/internal/web"
)

func newTestRouter(hits *[]string) *Router {
	rt := New()
	rt.Register(http.MethodGet, "/api/pages/{slug}", func(req *web.Request, res *web.Response) error {
		*hits = append(*hits, "page:"+req.Param("slug"))
		res.SetBody(map[string]any{"slug": req.Param("slug")})
		return nil
	})
	rt.Register(http.MethodPost, "/api/login", func(req *web.Request, res *web.Response) error {
		*hits = append(*hits, "login")
		res.SetBody(map[string]any{"ok": true})
		return nil
	})
	rt.Register(http.MethodDelete, "/api/login", func(req *web.Request, res *web.Response) error {
		*hits = append(*hits, "login-delete")
		return nil
	})
	return rt
}

func TestDispatchReachesExactlyOneHandler(t *testing.T) {
	var hits []string
	rt := newTestRouter(&hits)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/shipping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(hits) != 1 || hits[0] != "page:shipping" {
		t.Fatalf("unexpected handler hits: %v", hits)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["slug"] != "shipping" {
		t.Fatalf("path parameter not bound: %v", body)
	}
}

func TestUnknownPathIs404(t *testing.T) {
	var hits []string
	rt := newTestRouter(&hits)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(hits) != 0 {
		t.Fatalf("no handler may run on 404, got %v", hits)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body is not the JSON envelope: %v", err)
	}
	if body["error"]["code"] != "not_found" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestWrongMethodIs405WithAllow(t *testing.T) {
	var hits []string
	rt := newTestRouter(&hits)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/login", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != "POST, DELETE" {
		t.Fatalf("Allow = %q, want %q", got, "POST, DELETE")
	}
	if len(hits) != 0 {
		t.Fatalf("no handler may run on 405, got %v", hits)
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/api/pages", "/api/pages", true},
		{"/api/pages", "/api/pages/extra", false},
		{"/api/pages/{slug}", "/api/pages/faq", true},
		{"/api/pages/{slug}", "/api/pages", false},
		{"/static/*", "/static/css/site.css", true},
		{"/", "/", true},
		{"/", "/api", false},
	}
	for _, tc := range cases {
		if got := matchPattern(tc.pattern, tc.path); got != tc.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}
