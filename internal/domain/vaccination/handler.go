package vaccination

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
	g.GET("/vaccinations", h.list)
	g.POST("/vaccinations", h.create)
	g.GET("/vaccinations/:id", h.get)
	g.PUT("/vaccinations/:id", h.update)
	g.DELETE("/vaccinations/:id", h.delete)
}

type vaccinationRequest struct {
	VaccineName string  `json:"vaccineName" validate:"required"`
	VaccineDate string  `json:"vaccineDate" validate:"required"`
	Notes       *string `json:"vaccineNotes,omitempty"`
}

func (r *vaccinationRequest) toModel() (*Vaccination, error) {
	date, err := time.Parse("2006-01-02", r.VaccineDate)
	if err != nil {
		return nil, apperr.Validation(map[string]string{"vaccineDate": "vaccineDate must be YYYY-MM-DD"})
	}
	return &Vaccination{
		VaccineName: r.VaccineName,
		VaccineDate: date,
		Notes:       r.Notes,
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

	var req vaccinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	v, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}

	created, err := h.svc.Create(c.Request().Context(), owner.ID, v)
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

	v, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, v)
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

	var req vaccinationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}
	v, err := req.toModel()
	if err != nil {
		return apperr.HTTP(err)
	}
	v.ID = id

	updated, err := h.svc.Update(c.Request().Context(), owner.ID, v)
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
