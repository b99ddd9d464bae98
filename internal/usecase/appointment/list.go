package appointment

import (
	"context"
	"time"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByRange serves the day/week/month calendar views. Both dates are
// shop-local and inclusive: the window runs from midnight of fromDate to
// midnight after toDate.
func (uc *ListAppointments) ByRange(
	ctx context.Context,
	shopID uint,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	from, err := time.ParseInLocation("2006-01-02", fromDate, loc)
	if err != nil {
		return nil, &domain.ValidationError{Field: "from", Reason: "expected YYYY-MM-DD"}
	}
	to, err := time.ParseInLocation("2006-01-02", toDate, loc)
	if err != nil {
		return nil, &domain.ValidationError{Field: "to", Reason: "expected YYYY-MM-DD"}
	}
	if to.Before(from) {
		return nil, &domain.ValidationError{Field: "to", Reason: "must not be before from"}
	}

	return uc.repo.ListAppointmentsForPeriod(ctx, shopID, from, to.Add(24*time.Hour))
}

// PendingCounters lists counter-proposed appointments awaiting a shop
// decision, oldest proposed datetime first.
func (uc *ListAppointments) PendingCounters(
	ctx context.Context,
	shopID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListPendingCounterProposals(ctx, shopID)
}
