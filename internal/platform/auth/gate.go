package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Gate routes browser navigation by session presence. Protected pages bounce
// anonymous visitors to the login page with the original path in ?redirect;
// public-only pages bounce signed-in visitors to the landing page. Presence
// is the only signal here. The cookie is not verified; a forged cookie gets
// past the gate and then fails at RequireAuth on every API call.
type Gate struct {
	CookieName  string
	LoginPath   string
	LandingPath string
	Protected   []string
	PublicOnly  []string
}

func NewGate(cookieName string) *Gate {
	return &Gate{
		CookieName:  cookieName,
		LoginPath:   "/auth/login",
		LandingPath: "/dashboard",
		Protected:   []string{"/dashboard", "/profile", "/auth/reset-password"},
		PublicOnly:  []string{"/auth/login", "/auth/register"},
	}
}

func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if g.skip(path) {
				return next(c)
			}

			hasSession := false
			if ck, err := c.Cookie(g.CookieName); err == nil && ck.Value != "" {
				hasSession = true
			}

			if !hasSession && matchesAny(path, g.Protected) {
				target := g.LoginPath + "?redirect=" + url.QueryEscape(path)
				return c.Redirect(http.StatusFound, target)
			}
			if hasSession && matchesAny(path, g.PublicOnly) {
				return c.Redirect(http.StatusFound, g.LandingPath)
			}
			return next(c)
		}
	}
}

// skip exempts API and asset traffic; the gate only steers page navigation.
func (g *Gate) skip(path string) bool {
	for _, prefix := range []string{"/api/", "/static/", "/assets/", "/health/"} {
		if strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/") {
			return true
		}
	}
	return path == "/favicon.ico"
}

// matchesAny reports whether path equals a rule or sits beneath it.
func matchesAny(path string, rules []string) bool {
	for _, rule := range rules {
		if path == rule || strings.HasPrefix(path, rule+"/") {
			return true
		}
	}
	return false
}
