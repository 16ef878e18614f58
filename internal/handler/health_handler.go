package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse reports service liveness and data-source mode.
type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// HealthHandler handles the liveness probe.
type HealthHandler struct {
	mode string
}

// NewHealthHandler creates a health handler reporting the given persistence
// mode ("database" or "memory").
func NewHealthHandler(mode string) *HealthHandler {
	return &HealthHandler{mode: mode}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "OK", Mode: h.mode})
}
