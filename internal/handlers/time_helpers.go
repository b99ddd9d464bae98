package handlers

import (
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

// The shop's fixed timezone drives every civil-time computation.

func locationFromShop(shop *models.Shop) *time.Location {
	if shop != nil {
		return timezone.Location(shop.Timezone)
	}
	return timezone.Location("")
}
