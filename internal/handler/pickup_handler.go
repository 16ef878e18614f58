package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sustainshare/internal/errors"
	"sustainshare/internal/facade"
)

// PickupHandler handles pickup scheduling endpoints.
type PickupHandler struct {
	facade *facade.Facade
}

// NewPickupHandler creates a new pickup handler.
func NewPickupHandler(f *facade.Facade) *PickupHandler {
	return &PickupHandler{facade: f}
}

// CreatePickupRequest represents a pickup scheduling request.
type CreatePickupRequest struct {
	FoodItemID    string    `json:"foodItemId" validate:"required"`
	CharityID     string    `json:"charityId" validate:"required"`
	ScheduledTime time.Time `json:"scheduledTime" validate:"required"`
}

// Create godoc
// @Summary Schedule a pickup for a claimed donation
// @Tags pickups
// @Accept json
// @Produce json
// @Param request body CreatePickupRequest true "Pickup data"
// @Success 201 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /pickups [post]
func (h *PickupHandler) Create(c echo.Context) error {
	var req CreatePickupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	body, _ := json.Marshal(req)
	env, err := h.facade.Post(c.Request().Context(), "/pickups", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, env)
}

// GetByFood godoc
// @Summary Get the pickup linked to a donation
// @Tags pickups
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /pickups/food/{id} [get]
func (h *PickupHandler) GetByFood(c echo.Context) error {
	env, err := h.facade.Get(c.Request().Context(), "/pickups/food/"+c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}
