package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"surveyhub_backend/internals/features/users/user/model"
	"surveyhub_backend/internals/helpers/testdb"
)

func decodePatch(t *testing.T, body string) PatchUserRequest {
	t.Helper()
	var r PatchUserRequest
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func TestPatchTouchesOnlySuppliedKeys(t *testing.T) {
	r := decodePatch(t, `{"phone":"0812","organisation":null}`)
	require.Nil(t, r.Validate())

	p := r.ToPatch()
	assert.ElementsMatch(t, []string{"phone", "organisation"}, p.Columns())
	assert.Equal(t, "0812", p.Map()["phone"])
	assert.Nil(t, p.Map()["organisation"])
}

func TestPatchChildDetailsAndProfileData(t *testing.T) {
	r := decodePatch(t, `{"child_details":[{"name":"Sam","school":"North"}],"profile_data":{"a":1},"child_count":1}`)
	require.Nil(t, r.Validate())

	m := r.ToPatch().Map()
	assert.Equal(t, datatypes.NewJSONSlice([]model.ChildDetail{{Name: "Sam", School: "North"}}), m["child_details"])
	assert.Equal(t, datatypes.JSON(`{"a":1}`), m["profile_data"])
	assert.Equal(t, 1, m["child_count"])
}

func TestPatchNullsOnNotNullColumns(t *testing.T) {
	r := decodePatch(t, `{"child_details":null,"profile_data":null}`)
	m := r.ToPatch().Map()

	assert.Equal(t, datatypes.NewJSONSlice([]model.ChildDetail{}), m["child_details"])
	assert.Nil(t, m["profile_data"])
}

func TestPatchValidation(t *testing.T) {
	errs := decodePatch(t, `{"email":"nope","role":"teacher","is_active":null,"child_count":-1,"password":"short"}`).Validate()
	for _, k := range []string{"email", "role", "is_active", "child_count", "password"} {
		assert.Contains(t, errs, k)
	}
}

func TestPasswordIsNeverPatchedDirectly(t *testing.T) {
	r := decodePatch(t, `{"password":"long enough secret"}`)
	require.Nil(t, r.Validate())
	assert.True(t, r.ToPatch().Empty())
}

func TestUpdateBindsEachValueOnce(t *testing.T) {
	r := decodePatch(t, `{"name":"Ana","email":"ANA@x.io ","phone":"1","is_active":false}`)
	p := r.ToPatch()

	res, err := model.UserTable.UpdateStatement(testdb.DryRun(t), int64(5), p, &model.UserModel{})
	require.NoError(t, err)
	require.NoError(t, res.Error)

	sql := testdb.SQL(res)
	assert.Contains(t, sql, `UPDATE "users" SET`)
	assert.Contains(t, sql, `"email"=$`)
	assert.Contains(t, sql, "RETURNING *")

	vars := testdb.Vars(res)
	assert.Contains(t, vars, "ana@x.io")
	assert.Contains(t, vars, "Ana")
	assert.Contains(t, vars, false)
	assert.Contains(t, vars, int64(5))
	// 4 columns, updated_at, key
	assert.Len(t, vars, 6)
}

func TestCreateNormalizeDefaults(t *testing.T) {
	r := CreateUserRequest{Email: " Ana@X.io "}
	r.Normalize()

	assert.Equal(t, "ana@x.io", r.Email)
	assert.Equal(t, "parent", r.Role)
	require.NotNil(t, r.IsActive)
	assert.True(t, *r.IsActive)

	m := r.ToModel()
	assert.Nil(t, m.ProfileData)
	assert.NotNil(t, m.ChildDetails)
}
