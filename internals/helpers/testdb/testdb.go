// Package testdb opens a postgres-dialect gorm handle that never touches the
// network, so tests can inspect the SQL a query would run. Writes skip gorm's
// implicit transaction; its Begin would dial the server.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dsn = "host=127.0.0.1 port=5432 user=surveyhub dbname=surveyhub sslmode=disable"

func DryRun(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db
}

// SQL returns the statement text gorm built for res.
func SQL(res *gorm.DB) string {
	return res.Statement.SQL.String()
}

func Vars(res *gorm.DB) []any {
	return res.Statement.Vars
}
