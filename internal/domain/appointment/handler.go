package appointment

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/techmed/techmed/internal/platform/apperr"
	"github.com/techmed/techmed/internal/platform/auth"
	"github.com/techmed/techmed/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the appointment endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/appointments", h.list)
	g.POST("/appointments", h.create)
	g.GET("/appointments/:id", h.get)
	g.PUT("/appointments/:id", h.update)
	g.DELETE("/appointments/:id", h.cancel)
	g.POST("/appointments/:id/cancel", h.cancel)
}

type appointmentRequest struct {
	DoctorID   uuid.UUID `json:"doctorId" validate:"required"`
	HospitalID uuid.UUID `json:"hospitalId" validate:"required"`
	Date       string    `json:"date" validate:"required"`
	Time       string    `json:"time" validate:"required"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r *appointmentRequest) toModel() (*Appointment, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"date": "date must be YYYY-MM-DD"})
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return nil, apperr.Validation(map[string]string{"time": "time must be HH:MM"})
	}
	return &Appointment{
		DoctorID:   r.DoctorID,
		HospitalID: r.HospitalID,
		Date:       date,
		TimeSlot:   r.Time,
		Notes:      r.Notes,
	}, nil
}

func (h *Handler) list(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	p := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), owner.ID, p.Limit, p.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) create(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	a, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}

	created, err := h.svc.Create(c.Request().Context(), owner.ID, a)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) get(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.ErrNotFound)
	}

	a, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) update(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.ErrNotFound)
	}

	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	a, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}
	a.ID = id

	updated, err := h.svc.Update(c.Request().Context(), owner.ID, a)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) cancel(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.ErrNotFound)
	}

	if err := h.svc.Cancel(c.Request().Context(), owner.ID, id); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Appointment cancelled",
	})
}
