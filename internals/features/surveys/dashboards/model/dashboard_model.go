package model

import (
	"time"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/helpers/patch"
)

// Widget is one chart tile. PivotState is the frontend's opaque pivot table
// configuration.
type Widget struct {
	ID          string         `json:"id"`
	QuestionID  string         `json:"questionId" validate:"required"`
	ChartType   string         `json:"chartType" validate:"required"`
	Aggregation string         `json:"aggregation"`
	PivotState  map[string]any `json:"pivotState,omitempty"`
}

type DashboardModel struct {
	ID        int64                       `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64                       `gorm:"column:user_id;not null" json:"user_id"`
	Name      string                      `gorm:"column:name;size:150;not null" json:"name"`
	Layout    string                      `gorm:"column:layout;size:20;default:layout-1" json:"layout"`
	Widgets   datatypes.JSONSlice[Widget] `gorm:"column:widgets;type:jsonb" json:"widgets"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DashboardModel) TableName() string { return "dashboards" }

var DashboardTable = patch.Table{
	Name:    "dashboards",
	Key:     "id",
	Columns: []string{"name", "layout", "widgets"},
}
