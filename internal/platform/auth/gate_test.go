package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func gateRequest(t *testing.T, g *Gate, path string, withCookie bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: g.CookieName, Value: "some-token"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := g.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestGate_ProtectedWithoutSession(t *testing.T) {
	g := NewGate("tokentechmed")
	rec := gateRequest(t, g, "/dashboard", false)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login?redirect=%2Fdashboard" {
		t.Errorf("unexpected redirect target %q", loc)
	}
}

func TestGate_ProtectedSubpath(t *testing.T) {
	g := NewGate("tokentechmed")
	rec := gateRequest(t, g, "/dashboard/appointments", false)
	if rec.Code != http.StatusFound {
		t.Errorf("expected 302 for nested protected path, got %d", rec.Code)
	}
}

func TestGate_ProtectedWithSession(t *testing.T) {
	g := NewGate("tokentechmed")
	rec := gateRequest(t, g, "/profile", true)
	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", rec.Code)
	}
}

func TestGate_PublicOnlyWithSession(t *testing.T) {
	g := NewGate("tokentechmed")
	rec := gateRequest(t, g, "/auth/login", true)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Errorf("expected landing redirect, got %q", loc)
	}
}

func TestGate_PublicOnlyWithoutSession(t *testing.T) {
	g := NewGate("tokentechmed")
	rec := gateRequest(t, g, "/auth/register", false)
	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", rec.Code)
	}
}

func TestGate_NeutralPath(t *testing.T) {
	g := NewGate("tokentechmed")
	for _, withCookie := range []bool{false, true} {
		rec := gateRequest(t, g, "/about", withCookie)
		if rec.Code != http.StatusOK {
			t.Errorf("cookie=%v: expected pass-through, got %d", withCookie, rec.Code)
		}
	}
}

func TestGate_SkipsAPIAndAssets(t *testing.T) {
	g := NewGate("tokentechmed")
	for _, path := range []string{"/api/v1/appointments", "/static/app.js", "/health", "/health/db"} {
		rec := gateRequest(t, g, path, false)
		if rec.Code != http.StatusOK {
			t.Errorf("path %s: expected pass-through, got %d", path, rec.Code)
		}
	}
}

func TestGate_HealthSkipIsExact(t *testing.T) {
	g := NewGate("tokentechmed")
	g.Protected = append(g.Protected, "/health-records")

	rec := gateRequest(t, g, "/health-records", false)
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect for protected path sharing the /health prefix, got %d", rec.Code)
	}
}

func TestGate_EmptyCookieIsAnonymous(t *testing.T) {
	g := NewGate("tokentechmed")
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: g.CookieName, Value: ""})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := g.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect for empty cookie, got %d", rec.Code)
	}
}
