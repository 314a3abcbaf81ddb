package service

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(b), nil
}

// CheckPassword compares against a stored hash. A missing hash never matches.
func CheckPassword(hash *string, plain string) error {
	if hash == nil || strings.TrimSpace(*hash) == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
