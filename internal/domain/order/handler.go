package order

import (
	"net/http"

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
	g.GET("/orders", h.list)
	g.POST("/orders", h.create)
	g.GET("/orders/:id", h.get)
	g.POST("/orders/:id/cancel", h.cancel)
}

type orderItemRequest struct {
	MedicineID uuid.UUID `json:"medicineId" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

type orderRequest struct {
	Address string             `json:"address" validate:"required"`
	Items   []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *Handler) create(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.HTTP(err)
	}

	inputs := make([]ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		inputs = append(inputs, ItemInput{MedicineID: it.MedicineID, Quantity: it.Quantity})
	}

	created, err := h.svc.Create(c.Request().Context(), owner.ID, req.Address, inputs)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, created)
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

func (h *Handler) get(c echo.Context) error {
	owner := auth.PatientFromContext(c)
	if owner == nil {
		return apperr.HTTP(apperr.ErrUnauthenticated)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.HTTP(apperr.ErrNotFound)
	}

	o, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, o)
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
		"message": "Order cancelled",
	})
}
