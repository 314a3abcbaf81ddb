package patch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyhub_backend/internals/helpers/testdb"
)

type widget struct {
	ID        int64
	Name      string
	Zone      string
	Status    string
	UpdatedAt time.Time
}

var widgets = Table{Name: "widgets", Key: "id", Columns: []string{"name", "zone", "status"}}

type widgetPatch struct {
	Name   Field[string] `json:"name"`
	Zone   Field[string] `json:"zone"`
	Status Field[string] `json:"status"`
}

func decode(t *testing.T, body string) widgetPatch {
	t.Helper()
	var p widgetPatch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestFieldTriState(t *testing.T) {
	p := decode(t, `{"name":"Alpha","zone":null}`)

	assert.True(t, p.Name.Present)
	require.NotNil(t, p.Name.Value)
	assert.Equal(t, "Alpha", *p.Name.Value)

	assert.True(t, p.Zone.Present)
	assert.Nil(t, p.Zone.Value)
	assert.False(t, p.Zone.IsSet())

	assert.False(t, p.Status.Present)
}

func TestFieldDecodesThroughSonic(t *testing.T) {
	// fiber's body parser runs on sonic
	var p struct {
		Name  Field[string]         `json:"name"`
		Tags  Field[[]string]       `json:"tags"`
		Extra Field[map[string]any] `json:"extra"`
		Zone  Field[string]         `json:"zone"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"name":"Alpha","tags":["a","b"],"extra":null}`), &p))

	assert.Equal(t, "Alpha", *p.Name.Value)
	assert.Equal(t, []string{"a", "b"}, *p.Tags.Value)
	assert.True(t, p.Extra.Present)
	assert.Nil(t, p.Extra.Value)
	assert.False(t, p.Zone.Present)

	var bad struct {
		Name Field[int] `json:"name"`
	}
	assert.Error(t, sonic.Unmarshal([]byte(`{"name":"x"}`), &bad))
}

func TestPatchSkipsAbsentKeepsNull(t *testing.T) {
	in := decode(t, `{"status":"closed","zone":null}`)

	var p Patch
	p.Set("name", in.Name).Set("status", in.Status).Set("zone", in.Zone)

	assert.Equal(t, []string{"status", "zone"}, p.Columns())
	assert.Equal(t, map[string]any{"status": "closed", "zone": nil}, p.Map())
}

func TestPatchPutKeepsFirstPosition(t *testing.T) {
	var p Patch
	p.Put("a", 1).Put("b", 2).Put("a", 3)

	assert.Equal(t, []Assignment{{Column: "a", Value: 3}, {Column: "b", Value: 2}}, p.Assignments())
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	db := testdb.DryRun(t)
	_, err := widgets.UpdateStatement(db, 1, Patch{}, &widget{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestUpdateRejectsUnknownColumn(t *testing.T) {
	db := testdb.DryRun(t)
	var p Patch
	p.Put("password_hash", "x")

	_, err := widgets.UpdateStatement(db, 1, p, &widget{})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestUpdateStatementBindsValues(t *testing.T) {
	db := testdb.DryRun(t)
	var p Patch
	p.Set("status", Value("closed"))

	res, err := widgets.UpdateStatement(db, int64(7), p, &widget{}, Owned("zone", "A"))
	require.NoError(t, err)
	require.NoError(t, res.Error)

	sql := testdb.SQL(res)
	assert.Contains(t, sql, `UPDATE "widgets" SET "status"=$1`)
	assert.Contains(t, sql, `"id" = $`)
	assert.Contains(t, sql, `"zone" = $`)
	assert.Contains(t, sql, "RETURNING *")
	assert.NotContains(t, sql, "closed")
	assert.NotContains(t, sql, `"name"`)

	vars := testdb.Vars(res)
	assert.Contains(t, vars, "closed")
	assert.Contains(t, vars, int64(7))
	assert.Contains(t, vars, "A")
}

func TestUpdateKeepsPatchOrder(t *testing.T) {
	db := testdb.DryRun(t)
	var p Patch
	p.Put("zone", "B").Put("name", "Beta").Put("status", "open")

	res, err := widgets.UpdateStatement(db, int64(3), p, &widget{})
	require.NoError(t, err)
	require.NoError(t, res.Error)

	sql := testdb.SQL(res)
	assert.Contains(t, sql, `SET "zone"=$1,"name"=$2,"status"=$3,"updated_at"=$4`)

	vars := testdb.Vars(res)
	require.Len(t, vars, 5)
	assert.Equal(t, []any{"B", "Beta", "open"}, vars[:3])
	assert.IsType(t, time.Time{}, vars[3])
	assert.Equal(t, int64(3), vars[4])
}

func TestUpdateNoRowsIsNotFound(t *testing.T) {
	// dry runs never touch a row
	db := testdb.DryRun(t)
	var p Patch
	p.Set("name", Value("Beta"))

	err := widgets.Update(t.Context(), db, 99, p, &widget{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchRejectsEmptyFilters(t *testing.T) {
	db := testdb.DryRun(t)
	blank := "  "

	var s Search
	s.Eq("zone", nil).Like("name", &blank)

	_, err := widgets.Apply(db.Model(&widget{}), s)
	assert.ErrorIs(t, err, ErrNoFilters)
}

func TestSearchBuildsConjunction(t *testing.T) {
	db := testdb.DryRun(t)
	zone, name := "A", "al"

	var s Search
	s.Eq("zone", &zone).Like("name", &name)

	q, err := widgets.Apply(db.Model(&widget{}), s)
	require.NoError(t, err)

	var out []widget
	res := q.Find(&out)
	sql := testdb.SQL(res)

	assert.Contains(t, sql, `"zone" = $1`)
	assert.Contains(t, sql, `"name" ILIKE $2`)
	assert.Equal(t, []any{"A", "%al%"}, testdb.Vars(res))
}

func TestSearchRejectsUnknownColumn(t *testing.T) {
	db := testdb.DryRun(t)
	v := "x"
	var s Search
	s.Eq("password_hash", &v)

	_, err := widgets.Apply(db.Model(&widget{}), s)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off`, EscapeLike("50%_off"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
}
