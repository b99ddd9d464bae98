package appointment

import (
	"context"
	"time"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists the open slot starts on a date. Purely advisory and
// read-only: it tolerates being momentarily stale relative to concurrent
// bookings, and it does not hide occupied slots (policy: flexibility over
// strict enforcement).
func (uc *GetAvailability) Execute(
	ctx context.Context,
	shopID uint,
	dateStr string,
	granularityMinutes int,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}

	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultGranularityMinutes
	}

	rows, err := uc.repo.ListWorkingHours(ctx, shopID)
	if err != nil {
		return nil, err
	}

	resolver := domain.NewWorkingHoursResolver(rows)
	return domain.SlotsFor(resolver, date, granularityMinutes)
}
