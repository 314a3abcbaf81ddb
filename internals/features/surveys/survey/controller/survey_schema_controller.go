package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/dto"
	"surveyhub_backend/internals/features/surveys/survey/service"
	helper "surveyhub_backend/internals/helpers"
)

// Builder edits. Every route works on draft surveys only and answers with
// the stored survey.

func (h *SurveyController) edit(c *fiber.Ctx, fn service.Edit) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	s, err := service.EditSchema(c.UserContext(), h.DB, id, fn)
	if err != nil {
		return surveyError(c, err)
	}
	return helper.JsonUpdated(c, "survey schema updated", s)
}

// POST /api/surveys/:id/pages  body: {title?}
func (h *SurveyController) AddPage(c *fiber.Ctx) error {
	var req dto.AddPageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	title := strings.TrimSpace(req.Title)
	return h.edit(c, func(d schema.Document) (schema.Document, error) {
		return schema.AddPage(d, title), nil
	})
}

// PATCH /api/surveys/:id/pages/:pageId  body: {title?, description?}
func (h *SurveyController) UpdatePage(c *fiber.Ctx) error {
	var p schema.PagePatch
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	pageID := c.Params("pageId")
	return h.edit(c, service.RequirePage(pageID, func(d schema.Document) (schema.Document, error) {
		return schema.UpdatePage(d, pageID, p), nil
	}))
}

// DELETE /api/surveys/:id/pages/:pageId
func (h *SurveyController) RemovePage(c *fiber.Ctx) error {
	pageID := c.Params("pageId")
	return h.edit(c, service.RequirePage(pageID, func(d schema.Document) (schema.Document, error) {
		return schema.RemovePage(d, pageID), nil
	}))
}

// POST /api/surveys/:id/pages/:pageId/elements  body: {kind}
func (h *SurveyController) AddElement(c *fiber.Ctx) error {
	var req dto.AddElementRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	pageID := c.Params("pageId")
	kind := schema.Kind(strings.TrimSpace(req.Kind))
	return h.edit(c, service.RequirePage(pageID, func(d schema.Document) (schema.Document, error) {
		return schema.AddElementByKind(d, pageID, kind)
	}))
}

// PATCH /api/surveys/:id/pages/:pageId/elements/:name
func (h *SurveyController) UpdateElement(c *fiber.Ctx) error {
	var p schema.ElementPatch
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	pageID, name := c.Params("pageId"), c.Params("name")
	return h.edit(c, service.RequireElement(pageID, name, func(d schema.Document) (schema.Document, error) {
		return schema.UpdateElement(d, pageID, name, p), nil
	}))
}

// DELETE /api/surveys/:id/pages/:pageId/elements/:name
func (h *SurveyController) RemoveElement(c *fiber.Ctx) error {
	pageID, name := c.Params("pageId"), c.Params("name")
	return h.edit(c, service.RequireElement(pageID, name, func(d schema.Document) (schema.Document, error) {
		return schema.RemoveElement(d, pageID, name), nil
	}))
}

// PUT /api/surveys/:id/pages/:pageId/elements/:name/kind  body: {kind}
func (h *SurveyController) ChangeElementKind(c *fiber.Ctx) error {
	var req dto.ChangeKindRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	pageID, name := c.Params("pageId"), c.Params("name")
	kind := schema.Kind(strings.TrimSpace(req.Kind))
	return h.edit(c, service.RequireElement(pageID, name, func(d schema.Document) (schema.Document, error) {
		return schema.ChangeElementKind(d, pageID, name, kind)
	}))
}
