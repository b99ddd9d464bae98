package appointment

import (
	"context"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
)

type RejectCounterProposal struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewRejectCounterProposal(
	repo domain.Repository,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
) *RejectCounterProposal {
	return &RejectCounterProposal{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *RejectCounterProposal) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	appointmentID uint,
	channel notification.Channel,
) (*models.Appointment, []string, error) {

	ap, err := uc.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	meta := counterSnapshot(ap)

	expected := domain.Status(ap.Status)
	if err := domain.RejectCounter(ap); err != nil {
		return nil, nil, err
	}

	if err := uc.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	if !channel.Valid() {
		channel = notification.ChannelSMS
	}
	warnings := notifyWarn(
		ctx, uc.notifier, ap,
		notification.EventCancelled,
		channel,
	)

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "counter_proposal_rejected",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})

	return ap, warnings, nil
}
