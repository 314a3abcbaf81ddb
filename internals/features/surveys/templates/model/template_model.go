package model

import (
	"time"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/helpers/patch"
)

type SurveyTemplateModel struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	Title       string         `gorm:"column:title;size:255;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	SchemaJSON  datatypes.JSON `gorm:"column:schema_json;type:jsonb" json:"schema_json"`
	CreatedBy   *int64         `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SurveyTemplateModel) TableName() string { return "survey_templates" }

var TemplateTable = patch.Table{
	Name:    "survey_templates",
	Key:     "id",
	Columns: []string{"title", "description", "metadata", "schema_json"},
}
