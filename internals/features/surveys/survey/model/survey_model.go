package model

import (
	"time"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/helpers/patch"
)

type SurveyModel struct {
	ID           int64          `gorm:"column:id;primaryKey" json:"id"`
	Title        string         `gorm:"column:title;size:255" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	SchemaJSON   datatypes.JSON `gorm:"column:schema_json;type:jsonb" json:"schema_json"`
	Status       string         `gorm:"column:status;size:20;default:draft" json:"status"`
	Audience     string         `gorm:"column:audience;size:20;default:directed" json:"audience"`
	MinResponses int            `gorm:"column:min_responses" json:"min_responses"`
	CreatedBy    int64          `gorm:"column:created_by" json:"created_by"`
	PublishedAt  *time.Time     `gorm:"column:published_at" json:"published_at"`
	ClosedAt     *time.Time     `gorm:"column:closed_at" json:"closed_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Recipients is loaded from survey_recipients.
	Recipients []int64 `gorm:"-" json:"recipients"`
}

func (SurveyModel) TableName() string { return "surveys" }

type SurveyRecipientModel struct {
	SurveyID  int64     `gorm:"column:survey_id;primaryKey" json:"survey_id"`
	SchoolID  int64     `gorm:"column:school_id;primaryKey" json:"school_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyRecipientModel) TableName() string { return "survey_recipients" }

var SurveyTable = patch.Table{
	Name: "surveys",
	Key:  "id",
	Columns: []string{
		"title", "description", "metadata", "schema_json", "status", "audience",
		"min_responses", "created_by", "published_at", "closed_at",
	},
}
