package directory

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techmed/techmed/internal/platform/apperr"
	"github.com/techmed/techmed/pkg/pagination"
)

// Handler serves the reference lookups the booking and ordering screens need.
// No ownership involved; the data is the same for every signed-in patient.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/doctors", h.listDoctors)
	g.GET("/hospitals", h.listHospitals)
	g.GET("/medicines", h.listMedicines)
}

func (h *Handler) listDoctors(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.repo.ListDoctors(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) listHospitals(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.repo.ListHospitals(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) listMedicines(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.repo.ListMedicines(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}
