package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/cache"
	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/httpresp"
	"github.com/qwiken-app/booking-api/internal/middleware"
	"github.com/qwiken-app/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER (provider queue)
////////////////////////////////////////////////////////

type BookingHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewBookingHandler(
	db *gorm.DB,
	repo domain.Repository,
	auditor *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *BookingHandler {
	return &BookingHandler{
		db:    db,
		repo:  repo,
		audit: auditor,
		cache: availCache,
	}
}

////////////////////////////////////////////////////////
// LIST (one date)
////////////////////////////////////////////////////////

func (h *BookingHandler) ListForDate(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}

	shop, err := h.repo.GetShopByID(c.Request.Context(), shopID)
	if err != nil {
		httperr.Internal(c, "shop_not_found", "Could not load shop.")
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	uc := booking.NewListQueue(h.repo)
	items, err := uc.Execute(c.Request.Context(), shopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, items)
}

////////////////////////////////////////////////////////
// UPDATE STATUS
////////////////////////////////////////////////////////

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	uc := booking.NewUpdateBookingStatus(h.repo, h.audit)
	b, err := uc.Execute(
		c.Request.Context(),
		shopID,
		userID,
		bookingID,
		domain.Status(req.Status),
		req.Note,
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.Conflict(c, "invalid_state", "That status change is not allowed.")
		default:
			httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		}
		return
	}

	// A cancellation or no-show frees the interval.
	if !domain.Status(b.Status).Blocks() {
		h.cache.Invalidate(c.Request.Context(), b.StaffID.String(), b.Date)
	}

	c.JSON(http.StatusOK, b)
}
