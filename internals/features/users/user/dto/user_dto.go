package dto

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/users/user/model"
	"surveyhub_backend/internals/helpers/patch"
)

/* =========================================================
   CREATE / REPLACE
   ========================================================= */

type CreateUserRequest struct {
	Name         string              `json:"name" validate:"max=150"`
	Email        string              `json:"email" validate:"required,email,max=255"`
	Role         string              `json:"role" validate:"omitempty,oneof=admin parent"`
	IsActive     *bool               `json:"is_active"`
	Organisation *string             `json:"organisation" validate:"omitempty,max=200"`
	Phone        *string             `json:"phone" validate:"omitempty,max=40"`
	ChildCount   int                 `json:"child_count" validate:"min=0"`
	ChildDetails []model.ChildDetail `json:"child_details" validate:"omitempty,dive"`
	ProfileData  json.RawMessage     `json:"profile_data"`
	SchoolID     *int64              `json:"school_id" validate:"omitempty,gt=0"`
	Password     string              `json:"password" validate:"omitempty,min=8,max=72"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role == "" {
		r.Role = constants.RoleParent
	}
	if r.IsActive == nil {
		t := true
		r.IsActive = &t
	}
	if r.ChildDetails == nil {
		r.ChildDetails = []model.ChildDetail{}
	}
}

// ToModel leaves PasswordHash to the caller.
func (r CreateUserRequest) ToModel() model.UserModel {
	return model.UserModel{
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		IsActive:     *r.IsActive,
		Organisation: r.Organisation,
		Phone:        r.Phone,
		ChildCount:   r.ChildCount,
		ChildDetails: datatypes.NewJSONSlice(r.ChildDetails),
		ProfileData:  rawJSON(r.ProfileData),
		SchoolID:     r.SchoolID,
	}
}

// ToPatch rewrites every profile column for PUT. The password is kept unless
// the caller also puts password_hash.
func (r CreateUserRequest) ToPatch() patch.Patch {
	var p patch.Patch
	p.Put("name", r.Name).
		Put("email", r.Email).
		Put("role", r.Role).
		Put("is_active", *r.IsActive).
		Put("organisation", r.Organisation).
		Put("phone", r.Phone).
		Put("child_count", r.ChildCount).
		Put("child_details", datatypes.NewJSONSlice(r.ChildDetails)).
		Put("profile_data", rawJSON(r.ProfileData)).
		Put("school_id", r.SchoolID)
	return p
}

/* =========================================================
   PATCH
   ========================================================= */

type PatchUserRequest struct {
	Name         patch.Field[string]              `json:"name"`
	Email        patch.Field[string]              `json:"email"`
	Role         patch.Field[string]              `json:"role"`
	IsActive     patch.Field[bool]                `json:"is_active"`
	Organisation patch.Field[string]              `json:"organisation"`
	Phone        patch.Field[string]              `json:"phone"`
	ChildCount   patch.Field[int]                 `json:"child_count"`
	ChildDetails patch.Field[[]model.ChildDetail] `json:"child_details"`
	ProfileData  patch.Field[json.RawMessage]     `json:"profile_data"`
	SchoolID     patch.Field[int64]               `json:"school_id"`
	Password     patch.Field[string]              `json:"password"`
}

func (r PatchUserRequest) Validate() map[string][]string {
	errs := map[string][]string{}
	add := func(k, msg string) { errs[k] = append(errs[k], msg) }

	if r.Email.Present {
		if !r.Email.IsSet() || !strings.Contains(*r.Email.Value, "@") {
			add("email", "email must be a valid email address")
		}
	}
	if r.Role.Present && (!r.Role.IsSet() || !constants.ValidRole(strings.ToLower(strings.TrimSpace(*r.Role.Value)))) {
		add("role", "role must be one of [admin parent]")
	}
	if r.IsActive.Present && r.IsActive.Value == nil {
		add("is_active", "is_active cannot be null")
	}
	if r.ChildCount.IsSet() && *r.ChildCount.Value < 0 {
		add("child_count", "child_count must be 0 or greater")
	}
	if r.SchoolID.IsSet() && *r.SchoolID.Value <= 0 {
		add("school_id", "school_id must be greater than 0")
	}
	if r.Password.Present && (!r.Password.IsSet() || len(*r.Password.Value) < 8 || len(*r.Password.Value) > 72) {
		add("password", "password must be between 8 and 72 characters")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToPatch maps only the supplied keys. Passwords are hashed by the caller and
// put as password_hash. NOT NULL columns clear to their zero value.
func (r PatchUserRequest) ToPatch() patch.Patch {
	var p patch.Patch
	if r.Name.Present {
		p.Put("name", strings.TrimSpace(deref(r.Name.Value)))
	}
	if r.Email.IsSet() {
		p.Put("email", strings.ToLower(strings.TrimSpace(*r.Email.Value)))
	}
	if r.Role.IsSet() {
		p.Put("role", strings.ToLower(strings.TrimSpace(*r.Role.Value)))
	}
	p.Set("is_active", r.IsActive).
		Set("organisation", r.Organisation).
		Set("phone", r.Phone)
	if r.ChildCount.Present {
		p.Put("child_count", deref(r.ChildCount.Value))
	}
	if r.ChildDetails.Present {
		details := deref(r.ChildDetails.Value)
		if details == nil {
			details = []model.ChildDetail{}
		}
		p.Put("child_details", datatypes.NewJSONSlice(details))
	}
	if r.ProfileData.Present {
		p.Put("profile_data", rawJSON(deref(r.ProfileData.Value)))
	}
	p.Set("school_id", r.SchoolID)
	return p
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// rawJSON stores absent or literal-null payloads as SQL NULL.
func rawJSON(b json.RawMessage) datatypes.JSON {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		return nil
	}
	return datatypes.JSON(s)
}
