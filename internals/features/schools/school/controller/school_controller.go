package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"surveyhub_backend/internals/configs"
	"surveyhub_backend/internals/features/schools/school/dto"
	"surveyhub_backend/internals/features/schools/school/model"
	"surveyhub_backend/internals/features/schools/school/service"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/patch"
	"surveyhub_backend/internals/logger"
)

type SchoolController struct {
	DB        *gorm.DB
	UploadDir string
	MaxLogo   int
}

func NewSchoolController(db *gorm.DB, cfg *configs.Config) *SchoolController {
	return &SchoolController{DB: db, UploadDir: cfg.UploadDir, MaxLogo: cfg.MaxLogoPixels}
}

var schoolSorts = map[string]string{
	"name":       "name",
	"zone":       "zone",
	"created_at": "created_at",
}

/*
=========================================================

	LIST
	GET /api/schools?q=&page=&per_page=&sort_by=name|zone|created_at&order=asc|desc
	=========================================================
*/
func (h *SchoolController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.SchoolModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("name ILIKE ?", "%"+patch.EscapeLike(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}

	var rows []model.SchoolModel
	if err := q.Order(helper.ResolveSort(c, schoolSorts, "name")).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}

	return helper.JsonList(c, "schools", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

/*
=========================================================

	GET
	GET /api/schools/:id
	=========================================================
*/
func (h *SchoolController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var m model.SchoolModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}
	return helper.JsonOK(c, "school", m)
}

/*
=========================================================

	CREATE
	POST /api/schools
	=========================================================
*/
func (h *SchoolController) Create(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}
	return helper.JsonCreated(c, "school created", m)
}

/*
=========================================================

	REPLACE
	PUT /api/schools/:id
	=========================================================
*/
func (h *SchoolController) Replace(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateSchoolRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()

	var m model.SchoolModel
	if err := model.SchoolTable.Update(c.UserContext(), h.DB, id, req.ToPatch(), &m); err != nil {
		return helper.StoreError(c, err, "school")
	}
	return helper.JsonUpdated(c, "school updated", m)
}

/*
=========================================================

	PATCH
	PATCH /api/schools/:id
	=========================================================
*/
func (h *SchoolController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PatchSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if errs := req.Validate(); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	var m model.SchoolModel
	if err := model.SchoolTable.Update(c.UserContext(), h.DB, id, req.ToPatch(), &m); err != nil {
		return helper.StoreError(c, err, "school")
	}
	return helper.JsonUpdated(c, "school updated", m)
}

/*
=========================================================

	DELETE
	DELETE /api/schools/:id
	=========================================================
*/
func (h *SchoolController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}

	var m model.SchoolModel
	res := h.DB.WithContext(c.UserContext()).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&m)
	if res.Error != nil {
		return helper.StoreError(c, res.Error, "school")
	}
	if res.RowsAffected == 0 {
		return helper.StoreError(c, patch.ErrNotFound, "school")
	}
	if m.LogoPath != nil {
		if err := service.RemoveLogo(h.UploadDir, *m.LogoPath); err != nil {
			logger.Warnf("[SCHOOL] removing logo of %d: %v", id, err)
		}
	}
	return helper.JsonDeleted(c, "school deleted", fiber.Map{"id": id})
}

/*
=========================================================

	SEARCH
	POST /api/schools/search
	body: {name?, zone?, status?, type?, level?} (at least one)
	=========================================================
*/
func (h *SchoolController) Search(c *fiber.Ctx) error {
	var req dto.SearchSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	paging := helper.ResolvePaging(c, 50, 500)

	q, err := model.SchoolTable.Apply(h.DB.WithContext(c.UserContext()).Model(&model.SchoolModel{}), req.ToSearch())
	if err != nil {
		return helper.StoreError(c, err, "school")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}
	var rows []model.SchoolModel
	if err := q.Order("name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}
	return helper.JsonList(c, "schools", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

/*
=========================================================

	LOGO
	PUT /api/schools/:id/logo (multipart, field "logo")
	=========================================================
*/
func (h *SchoolController) UploadLogo(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "logo file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot open uploaded file")
	}
	defer src.Close()

	var old model.SchoolModel
	if err := h.DB.WithContext(c.UserContext()).Select("id", "logo_path").First(&old, id).Error; err != nil {
		return helper.StoreError(c, err, "school")
	}

	data, err := service.EncodeLogo(src, h.MaxLogo)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			return helper.JsonError(c, fiber.StatusUnsupportedMediaType, err.Error())
		}
		return helper.StoreError(c, err, "school logo")
	}
	path, err := service.SaveLogo(h.UploadDir, id, data)
	if err != nil {
		return helper.StoreError(c, err, "school logo")
	}

	var p patch.Patch
	p.Put("logo_path", path)
	var m model.SchoolModel
	if err := model.SchoolTable.Update(c.UserContext(), h.DB, id, p, &m); err != nil {
		_ = service.RemoveLogo(h.UploadDir, path)
		return helper.StoreError(c, err, "school")
	}
	if old.LogoPath != nil && *old.LogoPath != path {
		if err := service.RemoveLogo(h.UploadDir, *old.LogoPath); err != nil {
			logger.Warnf("[SCHOOL] removing old logo of %d: %v", id, err)
		}
	}
	return helper.JsonUpdated(c, "logo updated", m)
}
