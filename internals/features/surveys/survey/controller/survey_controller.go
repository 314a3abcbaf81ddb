package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/dto"
	"surveyhub_backend/internals/features/surveys/survey/model"
	"surveyhub_backend/internals/features/surveys/survey/service"
	templateModel "surveyhub_backend/internals/features/surveys/templates/model"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/patch"
)

type SurveyController struct {
	DB     *gorm.DB
	Notify service.Notifier
}

func NewSurveyController(db *gorm.DB, notify service.Notifier) *SurveyController {
	return &SurveyController{DB: db, Notify: notify}
}

var surveySorts = map[string]string{
	"created_at": "created_at",
	"title":      "title",
	"status":     "status",
}

// surveyError renders lifecycle and schema failures; the rest go to StoreError.
func surveyError(c *fiber.Ctx, err error) error {
	var te *service.TransitionError
	var pe *service.PublishError
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &te):
		return helper.JsonError(c, fiber.StatusConflict, te.Error())
	case errors.Is(err, service.ErrNotDraft):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &pe):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(helper.ErrorResponse{
			Message:   pe.Error(),
			ErrorCode: "VALIDATION_ERROR",
			Errors:    pe.Fields(),
		})
	case service.IsPublishError(err):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, schema.ErrUnknownKind):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrPageNotFound), errors.Is(err, service.ErrElementNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &syn), errors.As(err, &typ):
		return helper.JsonError(c, fiber.StatusBadRequest, "schema_json is not a valid survey document")
	}
	return helper.StoreError(c, err, "survey")
}

/*
=========================================================

	LIST
	GET /api/surveys?status=&created_by=&q=&page=&per_page=&sort_by=&order=
	=========================================================
*/
func (h *SurveyController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.SurveyModel{})
	if !helper.IsAdmin(c) {
		q = service.VisibleTo(q, helper.GetSchoolIDFromToken(c))
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if !service.ValidStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid status filter")
		}
		q = q.Where("surveys.status = ?", st)
	}
	if cb := strings.TrimSpace(c.Query("created_by")); cb != "" {
		id, err := strconv.ParseInt(cb, 10, 64)
		if err != nil || id <= 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid created_by filter")
		}
		q = q.Where("surveys.created_by = ?", id)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("surveys.title ILIKE ?", "%"+patch.EscapeLike(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return surveyError(c, err)
	}
	var rows []model.SurveyModel
	if err := q.Order(helper.ResolveSort(c, surveySorts, "created_at")).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return surveyError(c, err)
	}
	if err := service.AttachRecipients(c.UserContext(), h.DB, rows); err != nil {
		return surveyError(c, err)
	}
	return helper.JsonList(c, "surveys", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

// load fetches one survey the caller may see, with its recipients.
func (h *SurveyController) load(c *fiber.Ctx, id int64) (model.SurveyModel, error) {
	var s model.SurveyModel
	q := h.DB.WithContext(c.UserContext()).Model(&model.SurveyModel{})
	if !helper.IsAdmin(c) {
		q = service.VisibleTo(q, helper.GetSchoolIDFromToken(c))
	}
	if err := q.Where("surveys.id = ?", id).Take(&s).Error; err != nil {
		return s, err
	}
	recipients, err := service.LoadRecipients(c.UserContext(), h.DB, id)
	if err != nil {
		return s, err
	}
	s.Recipients = recipients
	return s, nil
}

/*
=========================================================

	GET
	GET /api/surveys/:id
	=========================================================
*/
func (h *SurveyController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.load(c, id)
	if err != nil {
		return surveyError(c, err)
	}
	return helper.JsonOK(c, "survey", s)
}

/*
=========================================================

	CREATE
	POST /api/surveys
	body: {title, description, metadata, schema_json, status?, audience?, min_responses, recipients[], template_id?}
	=========================================================
*/
func (h *SurveyController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateSurveyRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	if req.TemplateID != nil {
		var tpl templateModel.SurveyTemplateModel
		if err := h.DB.WithContext(c.UserContext()).First(&tpl, *req.TemplateID).Error; err != nil {
			return helper.StoreError(c, err, "survey template")
		}
		if len(req.SchemaJSON) == 0 {
			req.SchemaJSON = json.RawMessage(tpl.SchemaJSON)
		}
		if strings.TrimSpace(req.Title) == "" {
			req.Title = tpl.Title
		}
		if req.Description == "" {
			req.Description = tpl.Description
		}
		if len(req.Metadata) == 0 {
			req.Metadata = json.RawMessage(tpl.Metadata)
		}
	}
	req.Normalize()

	s, err := req.ToModel(uid)
	if err != nil {
		return surveyError(c, err)
	}
	if err := service.CreateSurvey(c.UserContext(), h.DB, &s, req.Recipients); err != nil {
		return surveyError(c, err)
	}
	if s.PublishedAt != nil {
		h.Notify.Published(s)
	}
	return helper.JsonCreated(c, "survey created", s)
}

/*
=========================================================

	UPDATE
	PUT /api/surveys/:id
	=========================================================
*/
func (h *SurveyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSurveyRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	if req.Recipients != nil {
		for _, sid := range *req.Recipients {
			if sid <= 0 {
				return helper.JsonValidationError(c, map[string][]string{"recipients": {"recipients must be school ids"}})
			}
		}
	}

	p, err := req.ToPatch()
	if err != nil {
		return surveyError(c, err)
	}
	res, err := service.UpdateSurvey(c.UserContext(), h.DB, id, service.Change{
		Patch:      p,
		Status:     req.Status,
		Recipients: req.Recipients,
	})
	if err != nil {
		return surveyError(c, err)
	}
	if res.Published {
		h.Notify.Published(res.Survey)
	}
	return helper.JsonUpdated(c, "survey updated", res.Survey)
}

/*
=========================================================

	STATUS
	PATCH /api/surveys/:id/status  body: {status}
	=========================================================
*/
func (h *SurveyController) SetStatus(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}

	res, err := service.SetStatus(c.UserContext(), h.DB, id, req.Status)
	if err != nil {
		return surveyError(c, err)
	}
	if res.Published {
		h.Notify.Published(res.Survey)
	}
	return helper.JsonUpdated(c, "survey is now "+res.Survey.Status, res.Survey)
}

/*
=========================================================

	DELETE
	DELETE /api/surveys/:id (drafts only)
	=========================================================
*/
func (h *SurveyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteDraft(c.UserContext(), h.DB, id); err != nil {
		return surveyError(c, err)
	}
	return helper.JsonDeleted(c, "survey deleted", fiber.Map{"id": id})
}
