package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	userModel "surveyhub_backend/internals/features/users/user/model"
)

// TokenIssuer signs HS256 access tokens. The auth middleware reads "id" as a
// decimal string and requires "exp".
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func (t TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t TokenIssuer) Claims(u userModel.UserModel) jwt.MapClaims {
	now := t.now().UTC()
	id := strconv.FormatInt(u.ID, 10)
	return jwt.MapClaims{
		"typ":   "access",
		"sub":   id,
		"id":    id,
		"role":  u.Role,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(t.TTL).Unix(),
	}
}

func (t TokenIssuer) Issue(u userModel.UserModel) (string, time.Time, error) {
	if t.Secret == "" {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}
	claims := t.Claims(u)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.Secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "signing access token")
	}
	return signed, time.Unix(claims["exp"].(int64), 0).UTC(), nil
}
