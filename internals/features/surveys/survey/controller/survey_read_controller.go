package controller

import (
	"github.com/gofiber/fiber/v2"

	responseModel "surveyhub_backend/internals/features/surveys/responses/model"
	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/dto"
	"surveyhub_backend/internals/features/surveys/survey/service"
	helper "surveyhub_backend/internals/helpers"
)

// GET /api/surveys/:id/questions
func (h *SurveyController) Questions(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.load(c, id)
	if err != nil {
		return surveyError(c, err)
	}
	doc, err := schema.Parse(s.SchemaJSON)
	if err != nil {
		return surveyError(c, service.ErrInvalidSchema)
	}

	questions := doc.Questions()
	if questions == nil {
		questions = []schema.Question{}
	}
	return helper.JsonOK(c, "survey questions", dto.QuestionsResponse{
		SurveyID:  s.ID,
		Title:     s.Title,
		Sections:  doc.Sections(),
		Questions: questions,
	})
}

// GET /api/surveys/:id/summary (admin)
func (h *SurveyController) Summary(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.load(c, id)
	if err != nil {
		return surveyError(c, err)
	}
	doc, err := schema.Parse(s.SchemaJSON)
	if err != nil {
		return surveyError(c, service.ErrInvalidSchema)
	}

	var rows []responseModel.SurveyResponseModel
	if err := h.DB.WithContext(c.UserContext()).
		Select("responses").
		Where("form_id = ?", id).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return surveyError(c, err)
	}
	answers := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		answers = append(answers, map[string]any(r.Responses))
	}

	return helper.JsonOK(c, "survey summary", fiber.Map{
		"survey_id":     s.ID,
		"status":        s.Status,
		"min_responses": s.MinResponses,
		"responses":     len(rows),
		"questions":     service.Summarize(doc, answers),
	})
}
