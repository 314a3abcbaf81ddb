package model

import (
	"time"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/helpers/patch"
)

type ChildDetail struct {
	Name   string `json:"name"`
	School string `json:"school"`
}

// UserModel maps the users table. Identity columns never leave the server.
type UserModel struct {
	ID           int64                            `gorm:"column:id;primaryKey" json:"id"`
	Name         string                           `gorm:"column:name;size:150" json:"name"`
	Email        string                           `gorm:"column:email;size:255;not null" json:"email"`
	Role         string                           `gorm:"column:role;size:20;default:parent" json:"role"`
	IsActive     bool                             `gorm:"column:is_active;default:true" json:"is_active"`
	Organisation *string                          `gorm:"column:organisation;size:200" json:"organisation"`
	Phone        *string                          `gorm:"column:phone;size:40" json:"phone"`
	ChildCount   int                              `gorm:"column:child_count" json:"child_count"`
	ChildDetails datatypes.JSONSlice[ChildDetail] `gorm:"column:child_details;type:jsonb" json:"child_details"`
	ProfileData  datatypes.JSON                   `gorm:"column:profile_data;type:jsonb" json:"profile_data"`
	SchoolID     *int64                           `gorm:"column:school_id" json:"school_id"`
	GoogleSub    *string                          `gorm:"column:google_sub" json:"-"`
	PasswordHash *string                          `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time                        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

// UserTable lists what PUT/PATCH may touch. Identity columns are set only by
// sign-in and admin create.
var UserTable = patch.Table{
	Name: "users",
	Key:  "id",
	Columns: []string{
		"name", "email", "role", "is_active", "organisation", "phone",
		"child_count", "child_details", "profile_data", "school_id", "password_hash",
	},
}
