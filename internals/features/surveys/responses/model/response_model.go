package model

import (
	"time"

	"gorm.io/datatypes"
)

// SurveyResponseModel is one submission. Rows are never updated.
type SurveyResponseModel struct {
	ID        int64             `gorm:"column:id;primaryKey" json:"id"`
	FormID    int64             `gorm:"column:form_id;not null" json:"form_id"`
	UserID    *int64            `gorm:"column:user_id" json:"user_id"`
	Responses datatypes.JSONMap `gorm:"column:responses;type:jsonb" json:"responses"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyResponseModel) TableName() string { return "survey_responses" }
