package dto

import (
	"strings"

	"surveyhub_backend/internals/features/schools/school/model"
	"surveyhub_backend/internals/helpers/patch"
)

/* =========================================================
   CREATE / REPLACE
   ========================================================= */

type CreateSchoolRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=200"`
	Address string `json:"address" validate:"max=500"`
	Zone    string `json:"zone" validate:"max=50"`
	Type    string `json:"type" validate:"max=50"`
	Level   string `json:"level" validate:"max=50"`
	Nature  string `json:"nature" validate:"max=50"`
	Status  string `json:"status" validate:"omitempty,max=30"`
}

func (r *CreateSchoolRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Zone = strings.TrimSpace(r.Zone)
	r.Type = strings.TrimSpace(r.Type)
	r.Level = strings.TrimSpace(r.Level)
	r.Nature = strings.TrimSpace(r.Nature)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = "active"
	}
}

func (r CreateSchoolRequest) ToModel() model.SchoolModel {
	return model.SchoolModel{
		Name:       r.Name,
		Address:    r.Address,
		Zone:       r.Zone,
		SchoolType: r.Type,
		Level:      r.Level,
		Nature:     r.Nature,
		Status:     r.Status,
	}
}

// ToPatch is used by PUT: every column is rewritten.
func (r CreateSchoolRequest) ToPatch() patch.Patch {
	var p patch.Patch
	p.Put("name", r.Name).
		Put("address", r.Address).
		Put("zone", r.Zone).
		Put("school_type", r.Type).
		Put("level", r.Level).
		Put("nature", r.Nature).
		Put("status", r.Status)
	return p
}

/* =========================================================
   PATCH
   ========================================================= */

type PatchSchoolRequest struct {
	Name    patch.Field[string] `json:"name"`
	Address patch.Field[string] `json:"address"`
	Zone    patch.Field[string] `json:"zone"`
	Type    patch.Field[string] `json:"type"`
	Level   patch.Field[string] `json:"level"`
	Nature  patch.Field[string] `json:"nature"`
	Status  patch.Field[string] `json:"status"`
}

// Validate returns per-field messages; name and status cannot be cleared.
func (r PatchSchoolRequest) Validate() map[string][]string {
	errs := map[string][]string{}
	if r.Name.Present && (r.Name.Value == nil || strings.TrimSpace(*r.Name.Value) == "") {
		errs["name"] = append(errs["name"], "name cannot be blank")
	}
	if r.Status.Present && (r.Status.Value == nil || strings.TrimSpace(*r.Status.Value) == "") {
		errs["status"] = append(errs["status"], "status cannot be blank")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToPatch maps JSON names onto columns. Text columns are NOT NULL, so an
// explicit null on them clears to the empty string.
func (r PatchSchoolRequest) ToPatch() patch.Patch {
	var p patch.Patch
	p.Set("name", trimmed(r.Name)).
		Set("address", emptyIfNull(r.Address)).
		Set("zone", emptyIfNull(r.Zone)).
		Set("school_type", emptyIfNull(r.Type)).
		Set("level", emptyIfNull(r.Level)).
		Set("nature", emptyIfNull(r.Nature)).
		Set("status", trimmed(r.Status))
	return p
}

func trimmed(f patch.Field[string]) patch.Field[string] {
	if f.Value != nil {
		v := strings.TrimSpace(*f.Value)
		f.Value = &v
	}
	return f
}

func emptyIfNull(f patch.Field[string]) patch.Field[string] {
	if f.Present && f.Value == nil {
		return patch.Value("")
	}
	return trimmed(f)
}

/* =========================================================
   SEARCH
   ========================================================= */

type SearchSchoolRequest struct {
	Name   *string `json:"name"`
	Zone   *string `json:"zone"`
	Status *string `json:"status"`
	Type   *string `json:"type"`
	Level  *string `json:"level"`
}

func (r SearchSchoolRequest) ToSearch() patch.Search {
	var s patch.Search
	s.Like("name", r.Name).
		Eq("zone", r.Zone).
		Eq("status", r.Status).
		Eq("school_type", r.Type).
		Eq("level", r.Level)
	return s
}
