package dto

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/schema"
	"surveyhub_backend/internals/features/surveys/survey/model"
	"surveyhub_backend/internals/helpers/patch"
)

/* =========================================================
   CREATE
   ========================================================= */

type CreateSurveyRequest struct {
	Title        string          `json:"title" validate:"max=255"`
	Description  string          `json:"description"`
	Metadata     json.RawMessage `json:"metadata"`
	SchemaJSON   json.RawMessage `json:"schema_json"`
	Status       string          `json:"status" validate:"omitempty,oneof=draft open"`
	Audience     string          `json:"audience" validate:"omitempty,oneof=directed open"`
	MinResponses int             `json:"min_responses" validate:"min=0"`
	Recipients   []int64         `json:"recipients" validate:"omitempty,dive,gt=0"`
	TemplateID   *int64          `json:"template_id" validate:"omitempty,gt=0"`
}

func (r *CreateSurveyRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Status == "" {
		r.Status = constants.SurveyDraft
	}
	if r.Audience == "" {
		r.Audience = constants.AudienceDirected
	}
}

// ToModel stamps the creator. The schema falls back to an empty document.
func (r CreateSurveyRequest) ToModel(createdBy int64) (model.SurveyModel, error) {
	doc, err := SchemaColumn(r.SchemaJSON)
	if err != nil {
		return model.SurveyModel{}, err
	}
	return model.SurveyModel{
		Title:        r.Title,
		Description:  r.Description,
		Metadata:     JSONColumn(r.Metadata),
		SchemaJSON:   doc,
		Status:       r.Status,
		Audience:     r.Audience,
		MinResponses: r.MinResponses,
		CreatedBy:    createdBy,
	}, nil
}

/* =========================================================
   UPDATE (PUT)
   ========================================================= */

// UpdateSurveyRequest replaces the editable columns. Title and owner are
// always required; publish checks run on top when the survey is or becomes
// open.
type UpdateSurveyRequest struct {
	Title        string          `json:"title" validate:"required,notblank,max=255"`
	Description  string          `json:"description"`
	Metadata     json.RawMessage `json:"metadata"`
	SchemaJSON   json.RawMessage `json:"schema_json"`
	Status       string          `json:"status" validate:"omitempty,oneof=draft open ready closed"`
	Audience     string          `json:"audience" validate:"omitempty,oneof=directed open"`
	MinResponses *int            `json:"min_responses" validate:"omitempty,min=0"`
	CreatedBy    int64           `json:"created_by" validate:"required,gt=0"`
	Recipients   *[]int64        `json:"recipients"`
}

func (r UpdateSurveyRequest) ToPatch() (patch.Patch, error) {
	var p patch.Patch
	p.Put("title", strings.TrimSpace(r.Title)).
		Put("description", strings.TrimSpace(r.Description)).
		Put("created_by", r.CreatedBy)
	if r.Metadata != nil {
		p.Put("metadata", JSONColumn(r.Metadata))
	}
	if r.SchemaJSON != nil {
		doc, err := SchemaColumn(r.SchemaJSON)
		if err != nil {
			return p, err
		}
		p.Put("schema_json", doc)
	}
	if r.Audience != "" {
		p.Put("audience", r.Audience)
	}
	if r.MinResponses != nil {
		p.Put("min_responses", *r.MinResponses)
	}
	return p, nil
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft open ready closed"`
}

/* =========================================================
   SCHEMA EDITS
   ========================================================= */

type AddPageRequest struct {
	Title string `json:"title"`
}

type AddElementRequest struct {
	Kind string `json:"kind" validate:"required"`
}

type ChangeKindRequest struct {
	Kind string `json:"kind" validate:"required"`
}

/* =========================================================
   READ MODELS
   ========================================================= */

type QuestionsResponse struct {
	SurveyID  int64             `json:"survey_id"`
	Title     string            `json:"title"`
	Sections  []schema.Section  `json:"sections"`
	Questions []schema.Question `json:"questions"`
}

/* =========================================================
   JSON COLUMNS
   ========================================================= */

// SchemaColumn checks that raw parses as a survey document and re-encodes it,
// so what is stored is always in canonical shape.
func SchemaColumn(raw json.RawMessage) (datatypes.JSON, error) {
	doc, err := schema.Parse(raw)
	if err != nil {
		return nil, err
	}
	return EncodeSchema(doc)
}

func EncodeSchema(doc schema.Document) (datatypes.JSON, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// JSONColumn stores absent or literal-null payloads as SQL NULL.
func JSONColumn(b json.RawMessage) datatypes.JSON {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	return datatypes.JSON(s)
}
