package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/techmed/techmed/internal/domain/patient"
	"github.com/techmed/techmed/internal/platform/apperr"
)

// RequireAuth resolves the session credential and stores the account in the
// request context. The Authorization header wins; the session cookie is the
// fallback for browser requests.
func RequireAuth(resolver *Resolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := c.Request().Header.Get(echo.HeaderAuthorization)
			if credential == "" {
				if ck, err := c.Cookie(cookieName); err == nil {
					credential = ck.Value
				}
			}

			p, err := resolver.Resolve(c.Request().Context(), credential)
			if err != nil {
				return apperr.HTTP(err)
			}

			patient.SetCurrent(c, p)
			return next(c)
		}
	}
}

// PatientFromContext returns the account resolved by RequireAuth, or nil.
func PatientFromContext(c echo.Context) *patient.Patient {
	return patient.FromContext(c)
}
