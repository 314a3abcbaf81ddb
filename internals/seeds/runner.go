package seeds

import (
	"context"
	"embed"

	"gorm.io/gorm"

	"surveyhub_backend/internals/logger"
	schools "surveyhub_backend/internals/seeds/schools"
	templates "surveyhub_backend/internals/seeds/templates"
	users "surveyhub_backend/internals/seeds/users"
)

//go:embed data/*.json
var data embed.FS

// RunAllSeeds is idempotent: rows that already exist are skipped. Schools go
// first so users can be linked to them by name.
func RunAllSeeds(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	//* Schools
	if err := schools.SeedSchoolsFromJSON(db, data, "data/schools.json"); err != nil {
		return err
	}

	//* Users
	if err := users.SeedUsersFromJSON(db, data, "data/users.json"); err != nil {
		return err
	}

	//* Templates
	if err := templates.SeedTemplatesFromJSON(db, data, "data/templates.json"); err != nil {
		return err
	}

	logger.Info("seeding done")
	return nil
}
