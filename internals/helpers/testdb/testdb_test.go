package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64
	Name string
}

func TestWritesNeedNoServer(t *testing.T) {
	db := DryRun(t)
	assert.True(t, db.Config.SkipDefaultTransaction)

	res := db.Table("rows").Model(&row{}).Where("id = ?", 1).Updates(map[string]any{"name": "x"})
	require.NoError(t, res.Error)
	assert.Contains(t, SQL(res), `UPDATE "rows" SET "name"=$1`)
	assert.Equal(t, []any{"x", 1}, Vars(res))

	res = db.Create(&row{Name: "y"})
	require.NoError(t, res.Error)
	assert.Contains(t, SQL(res), `INSERT INTO "rows"`)
}
