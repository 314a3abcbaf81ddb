package controller

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/features/users/auth/service"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/testdb"
)

type rejectingVerifier struct{ calls int }

func (r *rejectingVerifier) Verify(string) (service.GoogleIdentity, error) {
	r.calls++
	return service.GoogleIdentity{}, service.ErrInvalidGoogleToken
}

func newAuthApp(t *testing.T, v service.GoogleVerifier) *fiber.App {
	h := &AuthController{
		DB:     testdb.DryRun(t),
		Google: v,
		Tokens: service.TokenIssuer{Secret: "x", TTL: time.Hour},
	}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/auth/google", h.LoginGoogle)
	app.Post("/auth/login", h.Login)
	app.Get("/auth/me", h.Me)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestGoogleLoginRejectsUnverifiedToken(t *testing.T) {
	v := &rejectingVerifier{}
	app := newAuthApp(t, v)

	assert.Equal(t, fiber.StatusUnauthorized, post(t, app, "/auth/google", `{"id_token":"forged"}`))
	assert.Equal(t, 1, v.calls)
}

func TestGoogleLoginNeedsToken(t *testing.T) {
	v := &rejectingVerifier{}
	app := newAuthApp(t, v)

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(t, app, "/auth/google", `{}`))
	assert.Zero(t, v.calls)
}

func TestLoginValidatesBody(t *testing.T) {
	app := newAuthApp(t, &rejectingVerifier{})

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(t, app, "/auth/login", `{"email":"nope","password":"x"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, app, "/auth/login", `{`))
}

func TestMeWithoutIdentityIsUnauthorized(t *testing.T) {
	app := newAuthApp(t, &rejectingVerifier{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
