package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/httpresp"
	"github.com/qwiken-app/booking-api/internal/middleware"
	"github.com/qwiken-app/booking-api/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, auditor *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: auditor}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type StaffRequest struct {
	Name        string   `json:"name" binding:"required"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties"`
	Active      *bool    `json:"is_active"`
}

////////////////////////////////////////////////////////
// CRUD
////////////////////////////////////////////////////////

func (h *StaffHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)

	var staff []models.StaffMember
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)

	member, ok := h.memberFromParam(c, shopID)
	if !ok {
		return
	}

	httpresp.OK(c, member)
}

func (h *StaffHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	member := models.StaffMember{
		ShopID:      shopID,
		Name:        req.Name,
		Role:        req.Role,
		Specialties: req.Specialties,
		Active:      true,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := h.db.Create(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "Could not create the staff member.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "staff_created",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	httpresp.Created(c, member)
}

func (h *StaffHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	member, ok := h.memberFromParam(c, shopID)
	if !ok {
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	member.Name = req.Name
	member.Role = req.Role
	member.Specialties = req.Specialties
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := h.db.Save(member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update the staff member.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "staff_updated",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	httpresp.OK(c, member)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	member, ok := h.memberFromParam(c, shopID)
	if !ok {
		return
	}

	// Soft-disable instead of delete: past bookings keep their staff
	// reference and the member simply stops being bookable.
	member.Active = false
	if err := h.db.Save(member).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "Could not remove the staff member.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "staff_deactivated",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	c.Status(http.StatusNoContent)
}

////////////////////////////////////////////////////////
// WORK SCHEDULE
////////////////////////////////////////////////////////

func (h *StaffHandler) UpdateWorkSchedule(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	member, ok := h.memberFromParam(c, shopID)
	if !ok {
		return
	}

	var ws schedule.WorkSchedule
	if err := c.ShouldBindJSON(&ws); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := validateWorkSchedule(&ws); err != nil {
		httperr.BadRequest(c, "invalid_schedule", err.Error())
		return
	}

	member.WorkSchedule = &ws
	if err := h.db.Save(member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_schedule", "Could not save the work schedule.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "work_schedule_updated",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	httpresp.OK(c, member)
}

func validateWorkSchedule(ws *schedule.WorkSchedule) error {
	days := []schedule.DaySchedule{
		ws.Sunday, ws.Monday, ws.Tuesday, ws.Wednesday,
		ws.Thursday, ws.Friday, ws.Saturday,
	}

	for _, day := range days {
		if !day.Working {
			continue
		}

		start, err := schedule.TimeToMinutes(day.Start)
		if err != nil {
			return err
		}
		end, err := schedule.TimeToMinutes(day.End)
		if err != nil {
			return err
		}
		if start >= end {
			return httperr.ErrBusiness("start_after_end")
		}
	}

	return nil
}

////////////////////////////////////////////////////////
// LEAVE DATES
////////////////////////////////////////////////////////

type LeaveDatesRequest struct {
	LeaveDates []schedule.LeaveDate `json:"leave_dates"`
}

func (h *StaffHandler) UpdateLeaveDates(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	member, ok := h.memberFromParam(c, shopID)
	if !ok {
		return
	}

	var req LeaveDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	for _, leave := range req.LeaveDates {
		if _, err := time.Parse(schedule.DateLayout, leave.Start); err != nil {
			httperr.BadRequest(c, "invalid_leave_date", "Leave dates must be YYYY-MM-DD.")
			return
		}
		if _, err := time.Parse(schedule.DateLayout, leave.End); err != nil {
			httperr.BadRequest(c, "invalid_leave_date", "Leave dates must be YYYY-MM-DD.")
			return
		}
		if leave.End < leave.Start {
			httperr.BadRequest(c, "invalid_leave_range", "Leave end date is before its start date.")
			return
		}
	}

	member.LeaveDates = req.LeaveDates
	if err := h.db.Save(member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_leave", "Could not save the leave dates.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "leave_dates_updated",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	httpresp.OK(c, member)
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

func (h *StaffHandler) memberFromParam(c *gin.Context, shopID uuid.UUID) (*models.StaffMember, bool) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return nil, false
	}

	var member models.StaffMember
	if err := h.db.
		Where("id = ? AND shop_id = ?", staffID, shopID).
		First(&member).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}

	return &member, true
}
