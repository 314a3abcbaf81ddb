package school

import (
	"errors"
	"io/fs"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/schools/school/model"
	"surveyhub_backend/internals/logger"
)

type SchoolSeed struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Zone    string `json:"zone"`
	Type    string `json:"type"`
	Level   string `json:"level"`
	Nature  string `json:"nature"`
}

func SeedSchoolsFromJSON(db *gorm.DB, fsys fs.FS, filePath string) error {
	logger.Infof("reading %s", filePath)

	file, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return pkgerrors.Wrap(err, "reading school seeds")
	}
	var seeds []SchoolSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return pkgerrors.Wrap(err, "decoding school seeds")
	}

	for _, s := range seeds {
		var existing model.SchoolModel
		err := db.Where("LOWER(name) = LOWER(?)", s.Name).Take(&existing).Error
		if err == nil {
			logger.Infof("school %q exists, skipping", s.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := model.SchoolModel{
			Name:       s.Name,
			Address:    s.Address,
			Zone:       s.Zone,
			SchoolType: s.Type,
			Level:      s.Level,
			Nature:     s.Nature,
			Status:     "active",
		}
		if err := db.Create(&row).Error; err != nil {
			return pkgerrors.Wrapf(err, "inserting school %q", s.Name)
		}
		logger.Infof("inserted school %s (#%d)", row.Name, row.ID)
	}
	return nil
}
