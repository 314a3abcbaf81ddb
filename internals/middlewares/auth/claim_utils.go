package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	helper "surveyhub_backend/internals/helpers"
)

const clockSkew = 30 * time.Second

var errUserInactive = errors.New("user inactive")

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - no token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	var expUnix int64
	switch t := claims["exp"].(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	case nil:
		return fmt.Errorf("token has no exp")
	default:
		return fmt.Errorf("invalid exp type %T", t)
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (int64, error) {
	switch v := claims["id"].(type) {
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("invalid user id")
		}
		return id, nil
	case float64:
		if v <= 0 {
			return 0, fmt.Errorf("invalid user id")
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("no user id")
	}
}

type tokenUser struct {
	ID       int64
	Email    string
	Role     string
	IsActive bool
	SchoolID *int64
}

func loadActiveUser(ctx context.Context, db *gorm.DB, userID int64) (tokenUser, error) {
	var u tokenUser
	err := db.WithContext(ctx).Table("users").
		Select("id, email, role, is_active, school_id").
		Where("id = ?", userID).
		Take(&u).Error
	if err != nil {
		return u, err
	}
	if !u.IsActive {
		return u, errUserInactive
	}
	return u, nil
}

/* ======== Store to Locals ======== */

func storeUserToLocals(c *fiber.Ctx, u tokenUser) {
	c.Locals(helper.LocalUserID, u.ID)
	c.Locals(helper.LocalUserRole, u.Role)
	c.Locals(helper.LocalUserEmail, u.Email)
	if u.SchoolID != nil {
		c.Locals(helper.LocalSchoolID, *u.SchoolID)
	}
}
