package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sustainshare/internal/facade"
)

// StatsHandler handles the public stats endpoints.
type StatsHandler struct {
	facade *facade.Facade
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(f *facade.Facade) *StatsHandler {
	return &StatsHandler{facade: f}
}

// Summary godoc
// @Summary Homepage impact summary
// @Tags stats
// @Produce json
// @Success 200 {object} facade.Envelope
// @Router /stats [get]
func (h *StatsHandler) Summary(c echo.Context) error {
	env, err := h.facade.Get(c.Request().Context(), "/stats")
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}
