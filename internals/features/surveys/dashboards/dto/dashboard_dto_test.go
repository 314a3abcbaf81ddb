package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/surveys/dashboards/model"
)

func TestNormalizeAssignsWidgetIDs(t *testing.T) {
	r := SaveDashboardRequest{
		Name:    " Overview ",
		Layout:  "layout-2",
		Widgets: []model.Widget{{QuestionID: "q1", ChartType: "bar"}, {ID: "keep", QuestionID: "q2", ChartType: "pie"}},
	}
	r.Normalize()

	assert.Equal(t, "Overview", r.Name)
	assert.Equal(t, "layout-2", r.Layout)
	assert.Nil(t, r.Validate())
	assert.NotEmpty(t, r.Widgets[0].ID)
	assert.Equal(t, "keep", r.Widgets[1].ID)

	m := r.ToModel(9)
	assert.Equal(t, int64(9), m.UserID)
	assert.Len(t, m.Widgets, 2)
	assert.Equal(t, []string{"name", "layout", "widgets"}, r.ToPatch().Columns())
}

func TestValidateCountsSlots(t *testing.T) {
	w := model.Widget{QuestionID: "q", ChartType: "bar"}

	for layout, slots := range constants.DashboardLayoutSlots {
		r := SaveDashboardRequest{Name: "d", Layout: layout, Widgets: make([]model.Widget, slots)}
		for i := range r.Widgets {
			r.Widgets[i] = w
		}
		assert.Nil(t, r.Validate(), layout)

		r.Widgets = append(r.Widgets, w)
		assert.Contains(t, r.Validate(), "widgets", layout)
	}

	empty := SaveDashboardRequest{Name: "d"}
	empty.Normalize()
	assert.Nil(t, empty.Validate())
}
