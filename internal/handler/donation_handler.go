package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sustainshare/internal/errors"
	"sustainshare/internal/facade"
	"sustainshare/internal/model"
	"sustainshare/internal/service"
)

// DonationHandler handles food donation endpoints.
type DonationHandler struct {
	facade    *facade.Facade
	donations service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(f *facade.Facade, donations service.DonationService) *DonationHandler {
	return &DonationHandler{facade: f, donations: donations}
}

// CreateFoodRequest represents a new donation posting.
type CreateFoodRequest struct {
	Name           string      `json:"name" validate:"required"`
	Quantity       string      `json:"quantity" validate:"required"`
	Category       string      `json:"category"`
	PickupLocation string      `json:"pickupLocation" validate:"required"`
	Coordinates    *[2]float64 `json:"coordinates"`
	ExpiryTime     time.Time   `json:"expiryTime" validate:"required"`
	Description    string      `json:"description"`
	Allergens      string      `json:"allergens"`
	DonorID        string      `json:"donorId" validate:"required"`
}

// ClaimRequest represents a charity claiming a donation.
type ClaimRequest struct {
	CharityID string `json:"charityId" validate:"required"`
}

// StatusRequest represents an explicit status override.
type StatusRequest struct {
	Status  model.DonationStatus `json:"status" validate:"required,oneof=CLAIMED IN_TRANSIT DELIVERED CANCELLED"`
	ActorID string               `json:"actorId"`
}

// List godoc
// @Summary List food donations
// @Tags food
// @Produce json
// @Success 200 {object} facade.Envelope
// @Failure 503 {object} errors.ErrorResponse
// @Router /food [get]
func (h *DonationHandler) List(c echo.Context) error {
	env, err := h.facade.Get(c.Request().Context(), "/food")
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// Get godoc
// @Summary Get a food donation
// @Tags food
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /food/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	env, err := h.facade.Get(c.Request().Context(), "/food/"+c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// Create godoc
// @Summary Post a new food donation
// @Tags food
// @Accept json
// @Produce json
// @Param request body CreateFoodRequest true "Donation data"
// @Success 201 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /food [post]
func (h *DonationHandler) Create(c echo.Context) error {
	var req CreateFoodRequest
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
	env, err := h.facade.Post(c.Request().Context(), "/food", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, env)
}

// Claim godoc
// @Summary Claim a food donation
// @Tags food
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body ClaimRequest true "Claiming charity"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /food/{id}/claim [put]
func (h *DonationHandler) Claim(c echo.Context) error {
	var req ClaimRequest
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
	env, err := h.facade.Put(c.Request().Context(), "/food/"+c.Param("id")+"/claim", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// UpdateStatus godoc
// @Summary Override a donation's status
// @Tags food
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body StatusRequest true "Target status"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /food/{id}/status [put]
func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	var req StatusRequest
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
	env, err := h.facade.Put(c.Request().Context(), "/food/"+c.Param("id")+"/status", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// Delete godoc
// @Summary Remove a food donation
// @Tags food
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /food/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	env, err := h.facade.Delete(c.Request().Context(), "/food/"+c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// Tracking godoc
// @Summary Live tracking snapshot for an in-transit donation
// @Tags food
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} tracking.Snapshot
// @Failure 404 {object} errors.ErrorResponse
// @Router /food/{id}/tracking [get]
func (h *DonationHandler) Tracking(c echo.Context) error {
	// Tracking sessions are local-only; there is no upstream equivalent.
	snap, err := h.donations.Tracking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

// mapError converts domain errors to echo HTTP errors.
func mapError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
