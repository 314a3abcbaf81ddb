package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/features/users/auth/repository"
	"surveyhub_backend/internals/features/users/auth/service"
	userModel "surveyhub_backend/internals/features/users/user/model"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/logger"
)

type AuthController struct {
	DB     *gorm.DB
	Google service.GoogleVerifier
	Tokens service.TokenIssuer
	Secure bool
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{
		DB:     db,
		Google: service.IDTokenVerifier{ClientID: cfg.GoogleClientID},
		Tokens: service.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
		Secure: cfg.IsProduction(),
	}
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        userModel.UserModel `json:"user"`
	Onboarded   bool                `json:"onboarded,omitempty"`
}

/* ==========================
   LOGIN GOOGLE
   POST /api/auth/google
========================== */

func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var input GoogleLoginRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}

	identity, err := h.Google.Verify(input.IDToken)
	if err != nil {
		logger.Debugf("[AUTH] google verify: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrInvalidGoogleToken.Error())
	}

	user, created, err := repository.OnboardGoogleUser(c.UserContext(), h.DB, identity)
	if err != nil {
		return helper.StoreError(c, err, "user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account has been deactivated")
	}
	if created {
		logger.Infof("[AUTH] onboarded user %d via google", user.ID)
	}
	return h.issue(c, *user, created)
}

/* ==========================
   LOGIN EMAIL + PASSWORD
   POST /api/auth/login
========================== */

func (h *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if ok, err := helper.ParseAndValidate(c, &input); !ok {
		return err
	}

	user, err := repository.FindUserByEmail(c.UserContext(), h.DB, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		}
		return helper.StoreError(c, err, "user")
	}
	if err := service.CheckPassword(user.PasswordHash, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "account has been deactivated")
	}
	return h.issue(c, *user, false)
}

/* ==========================
   ME
   GET /api/auth/me
========================== */

func (h *AuthController) Me(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := repository.FindUserByID(c.UserContext(), h.DB, uid)
	if err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonOK(c, "current user", user)
}

func (h *AuthController) issue(c *fiber.Ctx, user userModel.UserModel, created bool) error {
	token, exp, err := h.Tokens.Issue(user)
	if err != nil {
		helper.LogInternalError(c, err, "token")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		Secure:   h.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  exp,
	})
	return helper.JsonOK(c, "login successful", LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
		User:        user,
		Onboarded:   created,
	})
}
