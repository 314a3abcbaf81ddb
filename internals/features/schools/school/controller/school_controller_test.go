package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/testdb"
)

func newSchoolApp(t *testing.T) *fiber.App {
	h := &SchoolController{DB: testdb.DryRun(t), UploadDir: t.TempDir(), MaxLogo: 256}
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Post("/schools/search", h.Search)
	app.Patch("/schools/:id", h.Patch)
	app.Get("/schools/:id", h.Get)
	app.Put("/schools/:id/logo", h.UploadLogo)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, helper.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out helper.ErrorResponse
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestSearchRequiresAFilter(t *testing.T) {
	app := newSchoolApp(t)

	for _, body := range []string{`{}`, `{"zone":"  ","name":""}`} {
		status, out := do(t, app, fiber.MethodPost, "/schools/search", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.False(t, out.Success)
		assert.Equal(t, "at least one search filter is required", out.Message)
	}
}

func TestPatchRejectsBlankName(t *testing.T) {
	app := newSchoolApp(t)

	status, out := do(t, app, fiber.MethodPatch, "/schools/3", `{"name":"   "}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, out.Errors, "name")
}

func TestPatchWithoutFieldsIsNothingToUpdate(t *testing.T) {
	app := newSchoolApp(t)

	status, out := do(t, app, fiber.MethodPatch, "/schools/3", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "nothing to update", out.Message)
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	app := newSchoolApp(t)

	status, out := do(t, app, fiber.MethodGet, "/schools/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid id", out.Message)
}

func TestLogoUploadNeedsAFile(t *testing.T) {
	app := newSchoolApp(t)

	status, out := do(t, app, fiber.MethodPut, "/schools/3/logo", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "logo file is required", out.Message)
}
