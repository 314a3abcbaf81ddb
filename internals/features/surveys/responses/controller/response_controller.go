package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/responses/dto"
	"surveyhub_backend/internals/features/surveys/responses/model"
	"surveyhub_backend/internals/features/surveys/responses/service"
	surveyService "surveyhub_backend/internals/features/surveys/survey/service"
	helper "surveyhub_backend/internals/helpers"
)

type ResponseController struct {
	DB *gorm.DB
}

func NewResponseController(db *gorm.DB) *ResponseController {
	return &ResponseController{DB: db}
}

func responseError(c *fiber.Ctx, err error) error {
	var missing *service.MissingAnswersError
	switch {
	case errors.As(err, &missing):
		return helper.JsonValidationError(c, map[string][]string{"responses": {missing.Error()}})
	case errors.Is(err, service.ErrNotAccepting):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case surveyService.IsPublishError(err):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return helper.StoreError(c, err, "response")
}

/*
=========================================================

	SUBMIT
	POST /api/responses  body: {form_id, responses}
	=========================================================
*/
func (h *ResponseController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.SubmitResponseRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	sub := service.Submission{FormID: req.FormID, UserID: &uid, Answers: req.Responses}
	if !helper.IsAdmin(c) {
		school := helper.GetSchoolIDFromToken(c)
		sub.Scope = func(tx *gorm.DB) *gorm.DB { return surveyService.VisibleTo(tx, school) }
	}

	row, promoted, err := service.Submit(c.UserContext(), h.DB, sub)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "survey not found")
		}
		return responseError(c, err)
	}
	return helper.JsonCreated(c, "response recorded", fiber.Map{
		"response":     row,
		"survey_ready": promoted,
	})
}

/*
=========================================================

	LIST
	GET /api/responses?form_id=&page=&per_page=
	Admins see everything; others only their own.
	=========================================================
*/
func (h *ResponseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.SurveyResponseModel{})
	if !helper.IsAdmin(c) {
		uid, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		q = q.Where("user_id = ?", uid)
	}
	if f := strings.TrimSpace(c.Query("form_id")); f != "" {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid form_id filter")
		}
		q = q.Where("form_id = ?", id)
	}
	return h.page(c, q, paging)
}

func (h *ResponseController) page(c *fiber.Ctx, q *gorm.DB, paging helper.Paging) error {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return responseError(c, err)
	}
	var rows []model.SurveyResponseModel
	if err := q.Order("created_at DESC, id DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return responseError(c, err)
	}
	return helper.JsonList(c, "responses", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

/*
=========================================================

	GET
	GET /api/responses/:id
	=========================================================
*/
func (h *ResponseController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	q := h.DB.WithContext(c.UserContext())
	if !helper.IsAdmin(c) {
		uid, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		q = q.Where("user_id = ?", uid)
	}
	var row model.SurveyResponseModel
	if err := q.Where("id = ?", id).Take(&row).Error; err != nil {
		return responseError(c, err)
	}
	return helper.JsonOK(c, "response", row)
}

/*
=========================================================

	DELETE
	DELETE /api/responses/:id
	=========================================================
*/
func (h *ResponseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).Where("id = ?", id).Delete(&model.SurveyResponseModel{})
	if res.Error != nil {
		return responseError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "response not found")
	}
	return helper.JsonDeleted(c, "response deleted", fiber.Map{"id": id})
}

/*
=========================================================

	BY SURVEY
	GET    /api/responses/form/:formId
	DELETE /api/responses/form/:formId
	=========================================================
*/
func (h *ResponseController) ListByForm(c *fiber.Ctx) error {
	formID, err := helper.ParamID(c, "formId")
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 50, 1000)
	q := h.DB.WithContext(c.UserContext()).Model(&model.SurveyResponseModel{}).Where("form_id = ?", formID)
	return h.page(c, q, paging)
}

func (h *ResponseController) DeleteByForm(c *fiber.Ctx) error {
	formID, err := helper.ParamID(c, "formId")
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).Where("form_id = ?", formID).Delete(&model.SurveyResponseModel{})
	if res.Error != nil {
		return responseError(c, res.Error)
	}
	return helper.JsonDeleted(c, "responses deleted", fiber.Map{"form_id": formID, "deleted": res.RowsAffected})
}
