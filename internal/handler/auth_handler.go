package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"sustainshare/internal/errors"
	"sustainshare/internal/facade"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	facade *facade.Facade
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(f *facade.Facade) *AuthHandler {
	return &AuthHandler{facade: f}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=DONOR CHARITY ADMIN"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
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
	env, err := h.facade.Post(c.Request().Context(), "/auth/signup", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, env)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} facade.Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
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
	env, err := h.facade.Post(c.Request().Context(), "/auth/login", body)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, env)
}
