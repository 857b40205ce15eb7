// internal/api/api_test.go
//
// End-to-end tests over the full pipeline: real middleware chain, real
// router, sqlmock behind the pool.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/oakharbor/storefront/internal/auth"
	"github.com/oakharbor/storefront/internal/config"
	"github.com/oakharbor/storefront/internal/database"
	"github.com/oakharbor/storefront/internal/session"
)

const findUserQuery = `SELECT u.id, u.name, u.email, u.password_hash, u.role_id, r.name AS role_name, u.is_active FROM users u JOIN roles r ON r.id = u.role_id WHERE LOWER(u.email) = LOWER(?) LIMIT 1`

func newTestAPI(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	cfg := &config.Config{
		CORS: config.CORS{AllowedOrigins: []string{"https://shop.example.com"}},
	}
	sessions := session.NewManager("storefront_session", "/api", 30*time.Minute)
	h := New(database.Wrap(sqlx.NewDb(raw, "sqlmock")), sessions)
	return h.Pipeline(cfg), mock
}

func expectUser(mock sqlmock.Sqlmock, email, hash string, active bool) {
	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "password_hash", "role_id", "role_name", "is_active",
		}).AddRow(int64(1), "Admin", email, hash, int64(2), "admin", active))
}

func postLogin(handler http.Handler, email, password string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	body := `{"email":"` + email + `","password":"` + password + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec
}

func TestLoginThenSession(t *testing.T) {
	handler, mock := newTestAPI(t)

	hash, _ := auth.HashPassword("Admin123!")
	expectUser(mock, "admin@x.com", hash, true)

	rec := postLogin(handler, "admin@x.com", "Admin123!", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var loginBody struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginBody); err != nil {
		t.Fatalf("login body: %v", err)
	}
	if loginBody.User.ID != 1 || loginBody.User.Role != "admin" {
		t.Fatalf("unexpected user payload: %+v", loginBody.User)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "storefront_session" {
		t.Fatalf("login must set the session cookie, got %#v", cookies)
	}

	// Same cookie, introspection endpoint: the identity must stick.
	r := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	r.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, r)

	if rec2.Code != http.StatusOK {
		t.Fatalf("session status = %d, body %s", rec2.Code, rec2.Body.String())
	}
	var sessBody map[string]any
	if err := json.Unmarshal(rec2.Body.Bytes(), &sessBody); err != nil {
		t.Fatalf("session body: %v", err)
	}
	if sessBody["user_id"] != float64(1) || sessBody["role"] != "admin" {
		t.Fatalf("unexpected session body: %v", sessBody)
	}
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	handler, mock := newTestAPI(t)

	// Known address, wrong password.
	hash, _ := auth.HashPassword("Admin123!")
	expectUser(mock, "admin@x.com", hash, true)
	recWrong := postLogin(handler, "admin@x.com", "nope", nil)

	// Address nobody registered.
	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "password_hash", "role_id", "role_name", "is_active",
		}))
	recGhost := postLogin(handler, "ghost@x.com", "nope", nil)

	if recWrong.Code != http.StatusUnauthorized || recGhost.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want 401 / 401", recWrong.Code, recGhost.Code)
	}
	if recWrong.Body.String() != recGhost.Body.String() {
		t.Fatalf("rejection bodies differ:\n%s\n%s", recWrong.Body.String(), recGhost.Body.String())
	}
}

func TestLoginMissingFieldsIs400(t *testing.T) {
	handler, _ := newTestAPI(t)

	rec := postLogin(handler, "admin@x.com", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	handler, mock := newTestAPI(t)

	hash, _ := auth.HashPassword("Admin123!")
	expectUser(mock, "admin@x.com", hash, true)

	rec := postLogin(handler, "admin@x.com", "Admin123!", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	sessCookie := rec.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	r.AddCookie(sessCookie)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, r)

	if rec2.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec2.Code)
	}
	var cleared *http.Cookie
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "storefront_session" && c.MaxAge < 0 {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatalf("logout must expire the cookie, got %#v", rec2.Result().Cookies())
	}

	// The old identifier is dead: introspection mints a fresh anonymous
	// session and reports 401.
	r3 := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	r3.AddCookie(sessCookie)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, r3)

	if rec3.Code != http.StatusUnauthorized {
		t.Fatalf("session after logout = %d, want 401", rec3.Code)
	}
}

func TestPageBySlugNotFound(t *testing.T) {
	handler, mock := newTestAPI(t)

	mock.ExpectQuery("SELECT .* FROM pages").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "body", "updated_at"}))

	r := httptest.NewRequest(http.MethodGet, "/api/pages/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not the JSON envelope: %v", err)
	}
	if body["error"]["code"] != "not_found" {
		t.Fatalf("unexpected body: %v", body)
	}
}
