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

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/service"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/testdb"
)

func newSurveyApp(t *testing.T, role string, uid int64) *fiber.App {
	h := NewSurveyController(testdb.DryRun(t), service.Notifier{})
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if uid > 0 {
			c.Locals(helper.LocalUserID, uid)
		}
		c.Locals(helper.LocalUserRole, role)
		return c.Next()
	})
	app.Get("/surveys", h.List)
	app.Post("/surveys", h.Create)
	app.Put("/surveys/:id", h.Update)
	app.Patch("/surveys/:id/status", h.SetStatus)
	app.Post("/surveys/:id/pages/:pageId/elements", h.AddElement)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, helper.ErrorResponse) {
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

func TestCreateOpenSurveyWithoutRecipientsIsRejected(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	body := `{"title":"Lunch","status":"open","schema_json":{"pages":[{"id":"p","elements":[{"name":"q1","type":"text"}]}]},"recipients":[]}`
	status, out := call(t, app, fiber.MethodPost, "/surveys", body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, service.ErrNoRecipients.Error(), out.Message)
}

func TestCreateReportsEveryFailingCheck(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	status, out := call(t, app, fiber.MethodPost, "/surveys", `{"title":" ","status":"open"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", out.ErrorCode)
	assert.Equal(t, []string{service.ErrTitleRequired.Error()}, out.Errors["title"])
	assert.Equal(t, []string{service.ErrNoQuestions.Error()}, out.Errors["schema_json"])
	assert.Equal(t, []string{service.ErrNoRecipients.Error()}, out.Errors["recipients"])
	assert.Contains(t, out.Message, service.ErrNoRecipients.Error())
}

func TestCreateRejectsBrokenSchema(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	status, _ := call(t, app, fiber.MethodPost, "/surveys", `{"title":"x","schema_json":{"pages":"nope"}}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateNeedsSignedInUser(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 0)

	status, _ := call(t, app, fiber.MethodPost, "/surveys", `{"title":"x"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestUpdateRequiresTitleAndOwner(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	status, out := call(t, app, fiber.MethodPut, "/surveys/4", `{"title":""}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, out.Errors, "title")
	assert.Contains(t, out.Errors, "created_by")
}

func TestStatusMustBeKnown(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	status, out := call(t, app, fiber.MethodPatch, "/surveys/4/status", `{"status":"archived"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, out.Errors, "status")
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	app := newSurveyApp(t, constants.RoleParent, 2)

	status, _ := call(t, app, fiber.MethodGet, "/surveys?status=archived", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAddElementNeedsKind(t *testing.T) {
	app := newSurveyApp(t, constants.RoleAdmin, 1)

	status, out := call(t, app, fiber.MethodPost, "/surveys/4/pages/p1/elements", `{}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, out.Errors, "kind")
}

func TestSurveyErrorMapping(t *testing.T) {
	app := fiber.New()
	errs := map[string]error{
		"/transition": &service.TransitionError{From: "closed", To: "open"},
		"/draft":      service.ErrNotDraft,
		"/kind":       schema.ErrUnknownKind,
		"/page":       service.ErrPageNotFound,
	}
	for path, e := range errs {
		e := e
		app.Get(path, func(c *fiber.Ctx) error { return surveyError(c, e) })
	}

	want := map[string]int{
		"/transition": fiber.StatusConflict,
		"/draft":      fiber.StatusConflict,
		"/kind":       fiber.StatusUnprocessableEntity,
		"/page":       fiber.StatusNotFound,
	}
	for path, code := range want {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, code, resp.StatusCode, path)
	}
}
