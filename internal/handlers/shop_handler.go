package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/httpresp"
	"github.com/qwiken-app/booking-api/internal/middleware"
	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type ShopHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewShopHandler(db *gorm.DB, auditor *audit.Dispatcher) *ShopHandler {
	return &ShopHandler{db: db, audit: auditor}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type UpdateShopRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	Timezone          string `json:"timezone"`
	MinAdvanceMinutes *int   `json:"min_advance_minutes"`
	Active            *bool  `json:"is_active"`
}

////////////////////////////////////////////////////////
// HANDLERS
////////////////////////////////////////////////////////

func (h *ShopHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)

	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	httpresp.OK(c, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Phone != "" {
		shop.Phone = req.Phone
	}
	if req.Address != "" {
		shop.Address = req.Address
	}
	if req.Timezone != "" {
		shop.Timezone = req.Timezone
	}
	if req.MinAdvanceMinutes != nil && *req.MinAdvanceMinutes >= 0 {
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.Active != nil {
		shop.Active = *req.Active
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update the shop.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID: shopID,
		UserID: &userID,
		Action: "shop_updated",
		Entity: "shop",
	})

	httpresp.OK(c, shop)
}
