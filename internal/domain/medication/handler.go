package medication

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/medications", h.list)
	g.POST("/medications", h.create)
	g.GET("/medications/:id", h.get)
	g.PUT("/medications/:id", h.update)
	g.DELETE("/medications/:id", h.delete)
}

type medicationRequest struct {
	MedicineID uuid.UUID `json:"medicineId" validate:"required"`
	Dosage     string    `json:"dosage" validate:"required"`
	StartDate  string    `json:"startDate" validate:"required"`
	EndDate    *string   `json:"endDate,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

func (r *medicationRequest) toModel() (*Medication, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"startDate": "startDate must be YYYY-MM-DD"})
	}
	m := &Medication{
		MedicineID: r.MedicineID,
		Dosage:     r.Dosage,
		StartDate:  start,
		Notes:      r.Notes,
	}
	if r.EndDate != nil {
		end, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return nil, apperr.Validation(map[string]string{"endDate": "endDate must be YYYY-MM-DD"})
		}
		m.EndDate = &end
	}
	return m, nil
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

	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	m, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}

	created, err := h.svc.Create(c.Request().Context(), owner.ID, m)
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

	m, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, m)
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

	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	m, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}
	m.ID = id

	updated, err := h.svc.Update(c.Request().Context(), owner.ID, m)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.ErrNotFound)
	}

	if err := h.svc.Delete(c.Request().Context(), owner.ID, id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
