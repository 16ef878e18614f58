package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sustainshare/internal/auth"
	"sustainshare/internal/model"
)

const testSecret = "test-secret"

// adminChain builds the same middleware stack Register puts in front of the
// admin routes.
func adminChain() echo.HandlerFunc {
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(testSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
	return jwtMiddleware(requireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
}

func adminRequest(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAdmin_AcceptsIssuedAdminToken(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret)
	token, err := jwtService.GenerateToken(&model.User{
		ID:    "admin-1",
		Email: "admin@example.com",
		Role:  model.RoleAdmin,
	})
	require.NoError(t, err)

	c, rec := adminRequest(t, token)
	require.NoError(t, adminChain()(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsNonAdminToken(t *testing.T) {
	jwtService := auth.NewJWTService(testSecret)
	token, err := jwtService.GenerateToken(&model.User{
		ID:    "donor-1",
		Email: "donor@example.com",
		Role:  model.RoleDonor,
	})
	require.NoError(t, err)

	c, _ := adminRequest(t, token)
	err = adminChain()(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestRequireAdmin_RejectsMissingToken(t *testing.T) {
	c, _ := adminRequest(t, "")
	err := adminChain()(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
