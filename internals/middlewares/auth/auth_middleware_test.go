package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/constants"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/testdb"
)

const secret = "test-secret"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newApp(t *testing.T) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/me", AuthJWT(testdb.DryRun(t), secret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthJWTRejectsBadTokens(t *testing.T) {
	app := newApp(t)
	future := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"missing":       "",
		"not bearer":    "Basic abc",
		"wrong secret":  "Bearer " + sign(t, "other", jwt.MapClaims{"id": "1", "exp": future}),
		"expired":       "Bearer " + sign(t, secret, jwt.MapClaims{"id": "1", "exp": time.Now().Add(-time.Hour).Unix()}),
		"no exp":        "Bearer " + sign(t, secret, jwt.MapClaims{"id": "1"}),
		"no id":         "Bearer " + sign(t, secret, jwt.MapClaims{"exp": future}),
		"garbage token": "Bearer not.a.jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestExtractUserID(t *testing.T) {
	id, err := extractUserID(jwt.MapClaims{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = extractUserID(jwt.MapClaims{"id": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = extractUserID(jwt.MapClaims{"id": "abc"})
	assert.Error(t, err)
	_, err = extractUserID(jwt.MapClaims{"id": "-3"})
	assert.Error(t, err)
}

func TestValidateTokenExpirySkew(t *testing.T) {
	justExpired := time.Now().Add(-10 * time.Second).Unix()
	assert.NoError(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(justExpired)}, clockSkew))
	assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": float64(justExpired)}, 0))
}

func TestOnlyRoles(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		if r := c.Query("role"); r != "" {
			c.Locals(helper.LocalUserRole, r)
		}
		return c.Next()
	}, OnlyRoles("", constants.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for role, want := range map[string]int{
		"admin":  fiber.StatusOK,
		"parent": fiber.StatusForbidden,
		"":       fiber.StatusUnauthorized,
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/admin?role="+role, nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}
