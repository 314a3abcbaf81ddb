package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/dashboards/model"
	"surveyhub_backend/internals/helpers/patch"
)

// SaveDashboardRequest is an upsert: a dashboard_id updates that dashboard
// (when the caller owns it), no id inserts a new one.
type SaveDashboardRequest struct {
	DashboardID *int64         `json:"dashboard_id" validate:"omitempty,gt=0"`
	Name        string         `json:"name" validate:"required,notblank,max=150"`
	Layout      string         `json:"layout" validate:"omitempty,oneof=layout-1 layout-2 layout-3 layout-4"`
	Widgets     []model.Widget `json:"widgets" validate:"omitempty,dive"`
}

// Normalize trims, defaults the layout and gives widgets without an id a
// fresh one.
func (r *SaveDashboardRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Layout = strings.TrimSpace(r.Layout)
	if r.Layout == "" {
		r.Layout = constants.DefaultDashboardLayout
	}
	if r.Widgets == nil {
		r.Widgets = []model.Widget{}
	}
	for i := range r.Widgets {
		if strings.TrimSpace(r.Widgets[i].ID) == "" {
			r.Widgets[i].ID = uuid.NewString()
		}
	}
}

// Validate runs after Normalize. A layout may leave slots empty but never
// holds more widgets than it has slots.
func (r SaveDashboardRequest) Validate() map[string][]string {
	slots := constants.DashboardLayoutSlots[r.Layout]
	if len(r.Widgets) > slots {
		return map[string][]string{
			"widgets": {fmt.Sprintf("%s holds at most %d widgets, got %d", r.Layout, slots, len(r.Widgets))},
		}
	}
	return nil
}

func (r SaveDashboardRequest) ToModel(owner int64) model.DashboardModel {
	return model.DashboardModel{
		UserID:  owner,
		Name:    r.Name,
		Layout:  r.Layout,
		Widgets: datatypes.NewJSONSlice(r.Widgets),
	}
}

func (r SaveDashboardRequest) ToPatch() patch.Patch {
	var p patch.Patch
	p.Put("name", r.Name).
		Put("layout", r.Layout).
		Put("widgets", datatypes.NewJSONSlice(r.Widgets))
	return p
}
