package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/templates/dto"
	"surveyhub_backend/internals/features/surveys/templates/model"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/patch"
)

type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

func templateError(c *fiber.Ctx, err error) error {
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syn) || errors.As(err, &typ) {
		return helper.JsonError(c, fiber.StatusBadRequest, "schema_json is not a valid survey document")
	}
	return helper.StoreError(c, err, "survey template")
}

// GET /api/survey-templates?q=&page=&per_page=
func (h *TemplateController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)
	q := h.DB.WithContext(c.UserContext()).Model(&model.SurveyTemplateModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("title ILIKE ?", "%"+patch.EscapeLike(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return templateError(c, err)
	}
	var rows []model.SurveyTemplateModel
	if err := q.Order("updated_at DESC, id DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return templateError(c, err)
	}
	return helper.JsonList(c, "survey templates", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

// GET /api/survey-templates/:id
func (h *TemplateController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var m model.SurveyTemplateModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		return templateError(c, err)
	}
	return helper.JsonOK(c, "survey template", m)
}

// POST /api/survey-templates
func (h *TemplateController) Create(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	uid, _ := helper.GetUserIDFromToken(c)
	m, err := req.ToModel(uid)
	if err != nil {
		return templateError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return templateError(c, err)
	}
	return helper.JsonCreated(c, "survey template created", m)
}

// PUT /api/survey-templates/:id
func (h *TemplateController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TemplateRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	p, err := req.ToPatch()
	if err != nil {
		return templateError(c, err)
	}
	var m model.SurveyTemplateModel
	if err := model.TemplateTable.Update(c.UserContext(), h.DB, id, p, &m); err != nil {
		return templateError(c, err)
	}
	return helper.JsonUpdated(c, "survey template updated", m)
}

// DELETE /api/survey-templates/:id
func (h *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).Delete(&model.SurveyTemplateModel{}, id)
	if res.Error != nil {
		return templateError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return templateError(c, patch.ErrNotFound)
	}
	return helper.JsonDeleted(c, "survey template deleted", fiber.Map{"id": id})
}
