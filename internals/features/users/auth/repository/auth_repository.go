package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"surveyhub_backend/internals/constants"
	"surveyhub_backend/internals/features/users/auth/service"
	userModel "surveyhub_backend/internals/features/users/user/model"
)

func FindUserByID(ctx context.Context, db *gorm.DB, id int64) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func FindUserByGoogleSub(ctx context.Context, db *gorm.DB, sub string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.WithContext(ctx).Where("google_sub = ?", sub).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// OnboardGoogleUser resolves the user for a verified Google identity:
// by subject, then by email (linking the subject), else a new active parent.
// The boolean reports whether a user was created.
func OnboardGoogleUser(ctx context.Context, db *gorm.DB, id service.GoogleIdentity) (*userModel.UserModel, bool, error) {
	var (
		out     *userModel.UserModel
		created bool
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := FindUserByGoogleSub(ctx, tx, id.Sub)
		if err == nil {
			out = u
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "finding user by google sub")
		}

		u, err = FindUserByEmail(ctx, tx, id.Email)
		switch {
		case err == nil:
			if err := tx.Model(u).Update("google_sub", id.Sub).Error; err != nil {
				return errors.Wrap(err, "linking google sub")
			}
			u.GoogleSub = &id.Sub
			out = u
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return errors.Wrap(err, "finding user by email")
		}

		sub := id.Sub
		nu := userModel.UserModel{
			Name:         id.Name,
			Email:        id.Email,
			Role:         constants.RoleParent,
			IsActive:     true,
			ChildDetails: datatypes.NewJSONSlice([]userModel.ChildDetail{}),
			GoogleSub:    &sub,
		}
		if err := tx.Create(&nu).Error; err != nil {
			return errors.Wrap(err, "creating google user")
		}
		out, created = &nu, true
		return nil
	})
	return out, created, err
}
