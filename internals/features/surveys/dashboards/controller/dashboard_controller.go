package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/features/surveys/dashboards/dto"
	"surveyhub_backend/internals/features/surveys/dashboards/model"
	helper "surveyhub_backend/internals/helpers"
	"surveyhub_backend/internals/helpers/patch"
)

// DashboardController only ever touches the caller's own dashboards. A
// dashboard owned by someone else is reported as not found.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/dashboards
func (h *DashboardController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&model.DashboardModel{}).Where("user_id = ?", uid)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.StoreError(c, err, "dashboard")
	}
	var rows []model.DashboardModel
	if err := q.Order("updated_at DESC, id DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.StoreError(c, err, "dashboard")
	}
	return helper.JsonList(c, "dashboards", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage), len(rows))
}

// GET /api/dashboards/:id
func (h *DashboardController) Get(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	var m model.DashboardModel
	if err := h.DB.WithContext(c.UserContext()).Where("id = ? AND user_id = ?", id, uid).Take(&m).Error; err != nil {
		return helper.StoreError(c, err, "dashboard")
	}
	return helper.JsonOK(c, "dashboard", m)
}

// POST /api/dashboards  body: {dashboard_id?, name, layout, widgets[]}
func (h *DashboardController) Save(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.SaveDashboardRequest
	if ok, err := helper.ParseAndValidate(c, &req); !ok {
		return err
	}
	req.Normalize()
	if errs := req.Validate(); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	if req.DashboardID == nil {
		m := req.ToModel(uid)
		if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
			return helper.StoreError(c, err, "dashboard")
		}
		return helper.JsonCreated(c, "dashboard created", m)
	}

	var m model.DashboardModel
	if err := model.DashboardTable.Update(c.UserContext(), h.DB, *req.DashboardID, req.ToPatch(), &m,
		patch.Owned("user_id", uid)); err != nil {
		return helper.StoreError(c, err, "dashboard")
	}
	return helper.JsonUpdated(c, "dashboard updated", m)
}

// DELETE /api/dashboards/:id
func (h *DashboardController) Delete(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParamID(c, "id")
	if err != nil {
		return err
	}
	res := h.DB.WithContext(c.UserContext()).Where("id = ? AND user_id = ?", id, uid).Delete(&model.DashboardModel{})
	if res.Error != nil {
		return helper.StoreError(c, res.Error, "dashboard")
	}
	if res.RowsAffected == 0 {
		return helper.StoreError(c, patch.ErrNotFound, "dashboard")
	}
	return helper.JsonDeleted(c, "dashboard deleted", fiber.Map{"id": id})
}
