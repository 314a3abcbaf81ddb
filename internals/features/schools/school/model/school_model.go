package model

import (
	"time"

	"surveyhub_backend/internals/helpers/patch"
)

type SchoolModel struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;size:200;not null" json:"name"`
	Address    string    `gorm:"column:address" json:"address"`
	Zone       string    `gorm:"column:zone;size:50" json:"zone"`
	SchoolType string    `gorm:"column:school_type;size:50" json:"type"`
	Level      string    `gorm:"column:level;size:50" json:"level"`
	Nature     string    `gorm:"column:nature;size:50" json:"nature"`
	Status     string    `gorm:"column:status;size:30;default:active" json:"status"`
	LogoPath   *string   `gorm:"column:logo_path" json:"logo_path"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

// SchoolTable is the allow-list for patches and searches on schools.
var SchoolTable = patch.Table{
	Name:    "schools",
	Key:     "id",
	Columns: []string{"name", "address", "zone", "school_type", "level", "nature", "status", "logo_path"},
}
