package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Sentinel errors for the failure classes the API distinguishes. Services and
// repositories return these (wrapped with context via fmt.Errorf and %w);
// handlers translate them to HTTP status codes with HTTP().
var (
	// ErrUnauthenticated covers missing, malformed, expired, or tampered
	// credentials, and tokens whose account no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound deliberately merges "does not exist" and "owned by another
	// patient" so that a guarded write cannot be used to probe for other
	// patients' resources.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate unique fields at registration, a doctor
	// double-booking, and a second in-flight order.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState covers illegal transitions such as cancelling a
	// confirmed appointment.
	ErrInvalidState = errors.New("invalid state")

	// ErrStoreUnavailable wraps backing-store timeouts and outages. Raw
	// database errors never cross the repository boundary.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// Validation builds a ValidationError from field/message pairs.
func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ConflictError carries per-field messages when unique fields are already
// taken, such as a duplicate email at registration.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %d field(s) taken", len(e.Fields))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict builds a ConflictError from field/message pairs.
func Conflict(fields map[string]string) *ConflictError {
	return &ConflictError{Fields: fields}
}

// messageError ties a client-safe message to a taxonomy sentinel. Only
// messages attached this way reach response bodies; context added with
// fmt.Errorf stays server-side.
type messageError struct {
	msg  string
	base error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.base }

// WithMessage attaches a client-facing message to a sentinel.
func WithMessage(base error, msg string) error {
	return &messageError{msg: msg, base: base}
}

// HTTP maps a taxonomy error to an echo HTTPError. Unknown errors are treated
// as store/internal failures and surfaced as 503 without leaking the cause.
func HTTP(err error) *echo.HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "Validation errors",
			"errors":  ve.Fields,
		})
	}

	var ce *ConflictError
	if errors.As(err, &ce) {
		return echo.NewHTTPError(http.StatusConflict, map[string]interface{}{
			"message": "Conflict",
			"errors":  ce.Fields,
		})
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found")
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, messageOr(err, "Conflict"))
	case errors.Is(err, ErrInvalidState):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, messageOr(err, "Invalid state"))
	case errors.Is(err, ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Service temporarily unavailable").SetInternal(err)
	}
}

// messageOr returns the client-facing message attached with WithMessage,
// otherwise the fallback. Wrapping context (constraint names, SQL detail)
// never surfaces.
func messageOr(err error, fallback string) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return fallback
}
