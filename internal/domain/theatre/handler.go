package theatre

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/orchestra-health/orchestra/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse", "ops"))
	readGroup.GET("/theatres", h.ListTheatres)
	readGroup.GET("/theatres/:id", h.GetTheatre)
	readGroup.GET("/theatres/surgical-queue", h.SurgicalQueue)

	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "ops"))
	writeGroup.POST("/theatres", h.CreateTheatre)
	writeGroup.PUT("/theatres/:id/status", h.UpdateStatus)
	writeGroup.POST("/theatres/batch-assign", h.BatchAssign)
}

func (h *Handler) CreateTheatre(c echo.Context) error {
	var t Theatre
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTheatre(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTheatre(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	t, err := h.svc.GetTheatre(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "theatre not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTheatres(c echo.Context) error {
	items, err := h.svc.ListTheatres(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status TheatreStatus `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.UpdateTheatreStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) SurgicalQueue(c echo.Context) error {
	ranked, err := h.svc.SurgicalQueue(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranked)
}

func (h *Handler) BatchAssign(c echo.Context) error {
	actor := auth.UserIDFromContext(c.Request().Context())
	plan, err := h.svc.BatchAssign(c.Request().Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoReadyTheatres), errors.Is(err, ErrEmptySurgicalQueue):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, plan)
}
