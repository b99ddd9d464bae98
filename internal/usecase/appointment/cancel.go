package appointment

import (
	"context"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
)

type CancelAppointment struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, []string, error) {

	ap, err := uc.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	// Counter fields are cleared by the cancel transition; snapshot them
	// into the audit trail first so the history survives.
	meta := counterSnapshot(ap)

	expected := domain.Status(ap.Status)
	if err := domain.Cancel(ap, domain.ActorShop); err != nil {
		return nil, nil, err
	}

	if err := uc.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	warnings := notifyWarn(
		ctx, uc.notifier, ap,
		notification.EventCancelled,
		notification.ChannelSMS,
	)

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})

	return ap, warnings, nil
}

func counterSnapshot(ap *models.Appointment) map[string]any {
	if ap.CounterProposalDatetime == nil {
		return nil
	}
	meta := map[string]any{
		"counter_proposal_datetime": ap.CounterProposalDatetime,
	}
	if ap.CounterProposalMessage != nil {
		meta["counter_proposal_message"] = *ap.CounterProposalMessage
	}
	return meta
}
