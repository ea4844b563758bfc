package queue

import (
	"net/http"

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
	g := api.Group("", auth.RequireRole("admin", "physician", "nurse", "ops"))
	g.GET("/queue", h.Ranking)
	g.GET("/queue/stats", h.Stats)
}

func (h *Handler) Ranking(c echo.Context) error {
	ranked, err := h.svc.Rank(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranked)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
