package handlers

import (
	"time"

	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

// All user-facing dates and times are interpreted in the shop's
// timezone; the shop row is the single source of truth for it.

func locationFromShop(shop *models.Shop) *time.Location {
	if shop != nil {
		return timezone.Location(shop.Timezone)
	}
	return timezone.Location("")
}

func parseDateInShop(shop *models.Shop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}
