package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"sustainshare/internal/errors"
	"sustainshare/internal/facade"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	facade *facade.Facade
}

// NewUserHandler creates a new user handler.
func NewUserHandler(f *facade.Facade) *UserHandler {
	return &UserHandler{facade: f}
}

// UpdateRoleRequest represents an admin changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=DONOR CHARITY ADMIN"`
}

// UpdateUserStatusRequest represents an admin suspending or reactivating a
// user.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} facade.Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	env, err := h.facade.Get(c.Request().Context(), "/users")
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} facade.Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	env, err := h.facade.Delete(c.Request().Context(), "/users/"+c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// UpdateRole godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
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
	env, err := h.facade.Put(c.Request().Context(), "/users/"+c.Param("id")+"/role", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}

// SetStatus godoc
// @Summary Suspend or reactivate a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserStatusRequest true "New status"
// @Success 200 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/status [put]
func (h *UserHandler) SetStatus(c echo.Context) error {
	var req UpdateUserStatusRequest
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
	env, err := h.facade.Put(c.Request().Context(), "/users/"+c.Param("id")+"/status", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}
