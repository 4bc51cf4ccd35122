package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/cache"
	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/notify"
	"github.com/qwiken-app/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking surface: shop pages,
// service catalogues, availability and booking creation.
type PublicHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	audit     *audit.Dispatcher
	notifier  *notify.Dispatcher
	cache     *cache.AvailabilityCache
	refresher *cache.Refresher

	stride    int
	threshold float64
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	auditor *audit.Dispatcher,
	notifier *notify.Dispatcher,
	availCache *cache.AvailabilityCache,
	refresher *cache.Refresher,
	strideMinutes int,
	occupancyThreshold float64,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		repo:      repo,
		audit:     auditor,
		notifier:  notifier,
		cache:     availCache,
		refresher: refresher,
		stride:    strideMinutes,
		threshold: occupancyThreshold,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	StaffID       string `json:"staff_id" binding:"required"`
	ServiceID     string `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// SHOP PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetShop(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        shop.ID,
		"name":      shop.Name,
		"slug":      shop.Slug,
		"phone":     shop.Phone,
		"address":   shop.Address,
		"timezone":  shop.Timezone,
		"image_url": shop.ImageURL,
	})
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("shop_id = ? AND active = true", shop.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":     shop.Slug,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// STAFF
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	staff, err := h.repo.ListStaffForShop(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	out := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		out = append(out, gin.H{
			"id":          s.ID,
			"name":        s.Name,
			"role":        s.Role,
			"specialties": s.Specialties,
			"avatar_url":  s.AvatarURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{"staff": out})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	staffIDStr := c.Query("staff_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || staffIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date, staff_id and service_id are required.")
		return
	}

	staffID, err := uuid.Parse(staffIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	ctx := c.Request.Context()

	// The cache only ever holds slot lists for available days, so a hit
	// implies the day itself is bookable.
	service, err := h.repo.GetService(ctx, shop.ID, serviceID)
	if err != nil {
		httperr.BadRequest(c, "service_not_found", "Invalid service.")
		return
	}

	if slots, hit := h.cache.GetSlots(ctx, staffIDStr, dateStr, service.DurationMin); hit {
		h.refresher.Watch(staffIDStr, dateStr, service.DurationMin)
		c.JSON(http.StatusOK, gin.H{
			"date":      dateStr,
			"staff_id":  staffIDStr,
			"available": true,
			"slots":     slots,
		})
		return
	}

	uc := booking.NewGetAvailability(h.repo, h.stride)
	out, err := uc.Execute(ctx, booking.AvailabilityInput{
		ShopID:    shop.ID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "staff_not_found") {
			httperr.BadRequest(c, "staff_not_found", "Invalid staff member.")
			return
		}
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Invalid service.")
			return
		}

		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	if out.Availability.Available {
		h.cache.SetSlots(ctx, staffIDStr, dateStr, service.DurationMin, out.Slots)
		h.refresher.Watch(staffIDStr, dateStr, service.DurationMin)
	}

	c.JSON(http.StatusOK, gin.H{
		"date":      out.Date,
		"staff_id":  out.StaffID,
		"available": out.Availability.Available,
		"reason":    out.Availability.Reason,
		"slots":     out.Slots,
	})
}

////////////////////////////////////////////////////////
// MONTH CALENDAR
////////////////////////////////////////////////////////

func (h *PublicHandler) MonthCalendar(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	staffID, err := uuid.Parse(c.Query("staff_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid year or month.")
		return
	}

	uc := booking.NewMonthCalendar(h.repo, h.threshold)
	days, err := uc.Execute(c.Request.Context(), shop.ID, staffID, year, month)
	if err != nil {
		if httperr.IsBusiness(err, "staff_not_found") {
			httperr.BadRequest(c, "staff_not_found", "Invalid staff member.")
			return
		}

		httperr.Internal(c, "calendar_failed", "Could not build calendar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	shop, ok := h.shopFromSlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	uc := booking.NewCreateBooking(h.repo, h.audit, h.notifier)
	result, err := uc.Execute(c.Request.Context(), booking.CreateBookingInput{
		ShopID:        shop.ID,
		StaffID:       staffID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceID:     serviceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})

	if result.State == domain.StateRejectedConflict {
		// Taken in the meantime. Force the next availability read to
		// recompute so the customer sees the real picture.
		h.cache.Invalidate(c.Request.Context(), req.StaffID, req.Date)
		httperr.Conflict(c, "time_conflict", "That time was just taken. Please pick another slot.")
		return
	}

	if err != nil {
		mapCreateBookingError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), req.StaffID, req.Date)

	c.JSON(http.StatusCreated, result.Booking)
}

////////////////////////////////////////////////////////
// helpers
////////////////////////////////////////////////////////

func (h *PublicHandler) shopFromSlug(c *gin.Context) (*models.Shop, bool) {
	slug := c.Param("slug")

	shop, err := h.repo.GetShopBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return nil, false
	}
	if !shop.Active {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return nil, false
	}

	return shop, true
}

func mapCreateBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "That time is too soon. Please pick a later slot.")
	case httperr.IsBusiness(err, "invalid_duration"):
		httperr.BadRequest(c, "invalid_duration", "Invalid service duration.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Invalid service.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Invalid staff member.")
	default:
		httperr.Internal(c, "failed_to_create_booking", "Could not create the booking.")
	}
}
