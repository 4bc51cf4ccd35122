package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/middleware"
	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/storage"
)

// maxUploadBytes bounds the multipart body before decode.
const maxUploadBytes = 5 << 20

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AvatarHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	audit    *audit.Dispatcher
}

func NewAvatarHandler(db *gorm.DB, uploader *storage.Uploader, auditor *audit.Dispatcher) *AvatarHandler {
	return &AvatarHandler{db: db, uploader: uploader, audit: auditor}
}

// UploadStaffAvatar replaces a staff member's avatar image.
func (h *AvatarHandler) UploadStaffAvatar(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff member.")
		return
	}

	var member models.StaffMember
	if err := h.db.
		Where("id = ? AND shop_id = ?", staffID, shopID).
		First(&member).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An avatar file is required.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "The image must be under 5 MB.")
		return
	}

	key := fmt.Sprintf("avatars/%s/%s", shopID, member.ID)
	url, err := h.uploader.UploadImage(c.Request.Context(), key, file)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	member.AvatarURL = url
	if err := h.db.Save(&member).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not save the avatar URL.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "staff_avatar_updated",
		Entity:   "staff_member",
		EntityID: &member.ID,
	})

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// UploadShopImage replaces the shop's public page image.
func (h *AvatarHandler) UploadShopImage(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uuid.UUID)
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An image file is required.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "The image must be under 5 MB.")
		return
	}

	key := fmt.Sprintf("shops/%s", shopID)
	url, err := h.uploader.UploadImage(c.Request.Context(), key, file)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	shop.ImageURL = url
	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not save the image URL.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID: shopID,
		UserID: &userID,
		Action: "shop_image_updated",
		Entity: "shop",
	})

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
