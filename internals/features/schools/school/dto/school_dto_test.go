package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/features/schools/school/model"
	"surveyhub_backend/internals/helpers/testdb"
)

func TestPatchSchoolRequestOnlySuppliedKeys(t *testing.T) {
	var req PatchSchoolRequest
	require.NoError(t, json.Unmarshal([]byte(`{"zone":" North ","address":null}`), &req))

	assert.Nil(t, req.Validate())
	p := req.ToPatch()
	assert.Equal(t, []string{"address", "zone"}, p.Columns())
	assert.Equal(t, map[string]any{"address": "", "zone": "North"}, p.Map())
}

func TestPatchSchoolRequestCannotClearName(t *testing.T) {
	var req PatchSchoolRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"status":""}`), &req))

	errs := req.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "status")
}

func TestZoneSearchBuildsOnlyThatFilter(t *testing.T) {
	zone := "North"
	s := SearchSchoolRequest{Zone: &zone}.ToSearch()
	require.False(t, s.Empty())

	db := testdb.DryRun(t)
	q, err := model.SchoolTable.Apply(db.Model(&model.SchoolModel{}), s)
	require.NoError(t, err)

	var rows []model.SchoolModel
	res := q.Find(&rows)
	require.NoError(t, res.Error)
	assert.Contains(t, testdb.SQL(res), `WHERE "zone" = $1`)
	assert.NotContains(t, testdb.SQL(res), "ILIKE")
	assert.Equal(t, []any{"North"}, testdb.Vars(res))
}

func TestNameSearchIsCaseInsensitiveSubstring(t *testing.T) {
	name := "50%"
	s := SearchSchoolRequest{Name: &name}.ToSearch()

	db := testdb.DryRun(t)
	q, err := model.SchoolTable.Apply(db.Model(&model.SchoolModel{}), s)
	require.NoError(t, err)

	var rows []model.SchoolModel
	res := q.Find(&rows)
	assert.Contains(t, testdb.SQL(res), `"name" ILIKE $1`)
	assert.Equal(t, []any{`%50\%%`}, testdb.Vars(res))
}

func TestCreateNormalizeDefaultsStatus(t *testing.T) {
	r := CreateSchoolRequest{Name: "  Alpha  "}
	r.Normalize()
	assert.Equal(t, "Alpha", r.Name)
	assert.Equal(t, "active", r.Status)
	assert.Equal(t, 7, r.ToPatch().Len())
}
