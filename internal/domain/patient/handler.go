package patient

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/techmed/techmed/internal/platform/apperr"
)

// contextKey is where the auth middleware stores the resolved account.
const contextKey = "current_patient"

// SetCurrent stores the resolved account in the request context.
func SetCurrent(c echo.Context, p *Patient) {
	c.Set(contextKey, p)
}

// FromContext returns the account placed in the request context by the auth
// middleware, or nil when the request is unauthenticated.
func FromContext(c echo.Context) *Patient {
	p, _ := c.Get(contextKey).(*Patient)
	return p
}

// CookieConfig is the session cookie contract shared by login and logout.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type Handler struct {
	svc    *Service
	cookie CookieConfig
}

func NewHandler(svc *Service, cookie CookieConfig) *Handler {
	return &Handler{svc: svc, cookie: cookie}
}

// RegisterRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.GET("/auth/logout", h.logout)
}

// RegisterProtectedRoutes mounts the endpoints that require a session.
func (h *Handler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/patient", h.currentPatient)
	g.PUT("/auth/profile", h.updateProfile)
	g.POST("/auth/reset-password", h.resetPassword)
}

type registerRequest struct {
	Name                  string     `json:"name" validate:"required"`
	Email                 string     `json:"email" validate:"required,email"`
	Password              string     `json:"password" validate:"required,min=8"`
	PhoneNumber           string     `json:"phoneNumber" validate:"required,min=10,max=15"`
	NationalID            string     `json:"nationalId" validate:"required,len=14"`
	Gender                *string    `json:"gender,omitempty"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	MaritalStatus         *string    `json:"maritalStatus,omitempty"`
	Allergies             *string    `json:"allergies,omitempty"`
	EmergencyContactName  *string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone,omitempty"`
}

func (h *Handler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}

	p := &Patient{
		Name:                  req.Name,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		NationalID:            req.NationalID,
		Gender:                req.Gender,
		BirthDate:             req.BirthDate,
		MaritalStatus:         req.MaritalStatus,
		Allergies:             req.Allergies,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	created, err := h.svc.Register(c.Request().Context(), p, req.Password)
	if err != nil {
		return apperr.HTTP(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Registration successful",
		"patient": created,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}

	_, token, expiresAt, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperr.HTTP(err)
	}

	c.SetCookie(h.sessionCookie(token, expiresAt))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Login successful",
		"token":   token,
	})
}

func (h *Handler) logout(c echo.Context) error {
	c.SetCookie(h.expiredCookie())
	return c.Redirect(http.StatusFound, "/auth/login")
}

func (h *Handler) currentPatient(c echo.Context) error {
	p := FromContext(c)
	if p == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"patient": p})
}

type updateProfileRequest struct {
	Name                  string     `json:"name" validate:"required"`
	PhoneNumber           string     `json:"phoneNumber" validate:"required,min=10,max=15"`
	Gender                *string    `json:"gender,omitempty"`
	BirthDate             *time.Time `json:"birthDate,omitempty"`
	MaritalStatus         *string    `json:"maritalStatus,omitempty"`
	Allergies             *string    `json:"allergies,omitempty"`
	EmergencyContactName  *string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone,omitempty"`
}

func (h *Handler) updateProfile(c echo.Context) error {
	cur := FromContext(c)
	if cur == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}

	p := &Patient{
		ID:                    cur.ID,
		Name:                  req.Name,
		PhoneNumber:           req.PhoneNumber,
		Gender:                req.Gender,
		BirthDate:             req.BirthDate,
		MaritalStatus:         req.MaritalStatus,
		Allergies:             req.Allergies,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	updated, err := h.svc.UpdateProfile(c.Request().Context(), p)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Profile updated",
		"patient": updated,
	})
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func (h *Handler) resetPassword(c echo.Context) error {
	cur := FromContext(c)
	if cur == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}

	if err := h.svc.ChangePassword(c.Request().Context(), cur.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Password updated",
	})
}

func (h *Handler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(h.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
