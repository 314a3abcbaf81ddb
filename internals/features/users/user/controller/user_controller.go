package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surveyhub_backend/internals/constants"
	authService "surveyhub_backend/internals/features/users/auth/service"
	"surveyhub_backend/internals/features/users/user/dto"
	"surveyhub_backend/internals/features/users/user/model"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/patch"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var userSorts = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

// GET /api/users?q=&role=&school_id=&page=&per_page=&sort_by=&order=
func (uc *UserController) List(c *fiber.Ctx) error {
	return uc.list(c, false)
}

// GET /api/users/active
func (uc *UserController) ListActive(c *fiber.Ctx) error {
	return uc.list(c, true)
}

func (uc *UserController) list(c *fiber.Ctx, onlyActive bool) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + patch.EscapeLike(s) + "%"
		q = q.Where("(name ILIKE ? OR email ILIKE ?)", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		if !constants.ValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid role filter")
		}
		q = q.Where("role = ?", role)
	}
	if sid := strings.TrimSpace(c.Query("school_id")); sid != "" {
		id, err := strconv.ParseInt(sid, 10, 64)
		if err != nil || id <= 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id filter")
		}
		q = q.Where("school_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.StoreError(c, err, "user")
	}

	var users []model.UserModel
	if err := q.Order(helper.ResolveSort(c, userSorts, "created_at")).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonList(c, "users", users, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(users))
}

// GET /api/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).First(&user, id).Error; err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonOK(c, "user", user)
}

// POST /api/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()
	if req.Password != "" && req.Role != constants.RoleAdmin {
		return helper.JsonValidationError(c, map[string][]string{"password": {"only admins sign in with a password"}})
	}

	user := req.ToModel()
	if req.Password != "" {
		hash, err := authService.HashPassword(req.Password)
		if err != nil {
			return helper.StoreError(c, err, "user")
		}
		user.PasswordHash = &hash
	}
	if err := uc.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonCreated(c, "user created", user)
}

// PUT /api/users/:id
func (uc *UserController) Replace(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	p := req.ToPatch()
	if req.Password != "" {
		hash, err := authService.HashPassword(req.Password)
		if err != nil {
			return helper.StoreError(c, err, "user")
		}
		p.Put("password_hash", hash)
	}
	var user model.UserModel
	if err := model.UserTable.Update(c.UserContext(), uc.DB, id, p, &user); err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonUpdated(c, "user updated", user)
}

// PATCH /api/users/:id
func (uc *UserController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	p := req.ToPatch()
	if req.Password.IsSet() {
		hash, err := authService.HashPassword(*req.Password.Value)
		if err != nil {
			return helper.StoreError(c, err, "user")
		}
		p.Put("password_hash", hash)
	}
	var user model.UserModel
	if err := model.UserTable.Update(c.UserContext(), uc.DB, id, p, &user); err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonUpdated(c, "user updated", user)
}

// PATCH /api/users/:id/deactivate keeps the row; sign-in and tokens stop working.
func (uc *UserController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	if me, _ := helper.GetUserIDFromToken(c); me == id {
		return helper.JsonError(c, fiber.StatusConflict, "you cannot deactivate your own account")
	}

	var p patch.Patch
	p.Put("is_active", false)
	var user model.UserModel
	if err := model.UserTable.Update(c.UserContext(), uc.DB, id, p, &user); err != nil {
		return helper.StoreError(c, err, "user")
	}
	return helper.JsonUpdated(c, "user deactivated", user)
}

// DELETE /api/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	if me, _ := helper.GetUserIDFromToken(c); me == id {
		return helper.JsonError(c, fiber.StatusConflict, "you cannot delete your own account")
	}

	var user model.UserModel
	res := uc.DB.WithContext(c.UserContext()).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&user)
	if res.Error != nil {
		return helper.StoreError(c, res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return helper.StoreError(c, patch.ErrNotFound, "user")
	}
	return helper.JsonDeleted(c, "user deleted", fiber.Map{"id": id})
}
