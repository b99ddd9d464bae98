package appointment

import (
	"context"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, []string, error) {

	ap, err := uc.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	expected := domain.Status(ap.Status)
	if err := domain.Confirm(ap, domain.ActorShop); err != nil {
		return nil, nil, err
	}

	if err := uc.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	warnings := notifyWarn(
		ctx, uc.notifier, ap,
		notification.EventConfirmed,
		notification.ChannelSMS,
	)

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, warnings, nil
}
