package dto

import (
	"encoding/json"
	"strings"

	"surveyhub_backend/internals/features/surveys/survey/dto"
	"surveyhub_backend/internals/features/surveys/templates/model"
	"surveyhub_backend/internals/helpers/patch"
)

type TemplateRequest struct {
	Title       string          `json:"title" validate:"required,notblank,max=255"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
	SchemaJSON  json.RawMessage `json:"schema_json"`
}

func (r *TemplateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r TemplateRequest) ToModel(createdBy int64) (model.SurveyTemplateModel, error) {
	doc, err := dto.SchemaColumn(r.SchemaJSON)
	if err != nil {
		return model.SurveyTemplateModel{}, err
	}
	m := model.SurveyTemplateModel{
		Title:       r.Title,
		Description: r.Description,
		Metadata:    dto.JSONColumn(r.Metadata),
		SchemaJSON:  doc,
	}
	if createdBy > 0 {
		m.CreatedBy = &createdBy
	}
	return m, nil
}

// ToPatch is used by PUT. An omitted schema_json keeps the stored one.
func (r TemplateRequest) ToPatch() (patch.Patch, error) {
	var p patch.Patch
	p.Put("title", r.Title).
		Put("description", r.Description).
		Put("metadata", dto.JSONColumn(r.Metadata))
	if r.SchemaJSON != nil {
		doc, err := dto.SchemaColumn(r.SchemaJSON)
		if err != nil {
			return p, err
		}
		p.Put("schema_json", doc)
	}
	return p, nil
}
