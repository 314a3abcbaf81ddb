package user

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/bytedance/sonic"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	schoolModel "surveyhub_backend/internals/features/schools/school/model"
	authService "surveyhub_backend/internals/features/users/auth/service"
	"surveyhub_backend/internals/features/users/user/model"
	"surveyhub_backend/internals/logger"
)

type UserSeed struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	School     string `json:"school"`
	ChildCount int    `json:"child_count"`
}

// SeedUsersFromJSON links each user to the school with the given name when
// one exists. Users without a password can only sign in with Google.
func SeedUsersFromJSON(db *gorm.DB, fsys fs.FS, filePath string) error {
	logger.Infof("reading %s", filePath)

	file, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return pkgerrors.Wrap(err, "reading user seeds")
	}
	var seeds []UserSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return pkgerrors.Wrap(err, "decoding user seeds")
	}

	for _, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.Email))

		var existing model.UserModel
		err := db.Where("LOWER(email) = ?", email).Take(&existing).Error
		if err == nil {
			logger.Infof("user %q exists, skipping", email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := model.UserModel{
			Name:       s.Name,
			Email:      email,
			Role:       s.Role,
			IsActive:   true,
			ChildCount: s.ChildCount,
		}
		if s.Password != "" {
			hash, err := authService.HashPassword(s.Password)
			if err != nil {
				return pkgerrors.Wrapf(err, "hashing password for %q", email)
			}
			row.PasswordHash = &hash
		}
		if s.School != "" {
			var school schoolModel.SchoolModel
			if err := db.Select("id").Where("LOWER(name) = LOWER(?)", s.School).Take(&school).Error; err == nil {
				row.SchoolID = &school.ID
			} else {
				logger.Warnf("school %q for %s not found", s.School, email)
			}
		}

		if err := db.Create(&row).Error; err != nil {
			return pkgerrors.Wrapf(err, "inserting user %q", email)
		}
		logger.Infof("inserted %s %s (#%d)", row.Role, row.Email, row.ID)
	}
	return nil
}
