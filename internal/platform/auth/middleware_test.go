package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func authedHandler(t *testing.T) echo.HandlerFunc {
	t.Helper()
	return func(c echo.Context) error {
		if PatientFromContext(c) == nil {
			t.Error("expected resolved patient in context")
		}
		return c.NoContent(http.StatusOK)
	}
}

func TestRequireAuth_Header(t *testing.T) {
	r, codec, _, p := newTestResolver(t)
	token, _, _ := codec.Issue(p)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/patient", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuth(r, "tokentechmed")
	if err := mw(authedHandler(t))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	r, codec, _, p := newTestResolver(t)
	token, _, _ := codec.Issue(p)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/patient", nil)
	req.AddCookie(&http.Cookie{Name: "tokentechmed", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuth(r, "tokentechmed")
	if err := mw(authedHandler(t))(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireAuth_HeaderWinsOverCookie(t *testing.T) {
	r, codec, _, p := newTestResolver(t)
	token, _, _ := codec.Issue(p)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/patient", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	req.AddCookie(&http.Cookie{Name: "tokentechmed", Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuth(r, "tokentechmed")
	err := mw(func(c echo.Context) error {
		t.Error("handler must not run with a bad header credential")
		return nil
	})(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/patient", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuth(r, "tokentechmed")
	err := mw(func(c echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if PatientFromContext(c) != nil {
		t.Error("no patient must be stored on failure")
	}
}

func TestPatientFromContext_Empty(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if PatientFromContext(c) != nil {
		t.Error("expected nil on a bare context")
	}
}
