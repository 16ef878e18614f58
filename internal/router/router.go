package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sustainshare/internal/auth"
	"sustainshare/internal/config"
	"sustainshare/internal/handler"
	"sustainshare/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	donationHandler *handler.DonationHandler,
	pickupHandler *handler.PickupHandler,
	statsHandler *handler.StatsHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/health", healthHandler.Health)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// Donation routes
	api.GET("/food", donationHandler.List)
	api.POST("/food", donationHandler.Create)
	api.GET("/food/:id", donationHandler.Get)
	api.DELETE("/food/:id", donationHandler.Delete)
	api.PUT("/food/:id/claim", donationHandler.Claim)
	api.PUT("/food/:id/status", donationHandler.UpdateStatus)
	api.GET("/food/:id/tracking", donationHandler.Tracking)

	// Pickup routes
	api.POST("/pickups", pickupHandler.Create)
	api.GET("/pickups/food/:id", pickupHandler.GetByFood)

	// Stats routes
	api.GET("/stats", statsHandler.Summary)
	api.GET("/stats/summary", statsHandler.Summary)

	// Admin routes (require JWT with ADMIN role)
	admin := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), requireAdmin)

	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.PUT("/users/:id/role", userHandler.UpdateRole)
	admin.PUT("/users/:id/status", userHandler.SetStatus)
}

// requireAdmin rejects authenticated users without the ADMIN role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
