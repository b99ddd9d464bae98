package confirmation

import (
	"context"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
)

// Gateway maps a bearer confirmation token to exactly one appointment and
// exposes the only client-reachable writes: confirm and counter-propose,
// both legal solely from the proposed status. Everything else through a
// token is a read-only view.
type Gateway struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewGateway(
	repo domain.Repository,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
) *Gateway {
	return &Gateway{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Resolve returns the appointment owning the token, or ErrNotFound. The
// stored token is re-checked with a constant-time comparison so the lookup
// path leaks no timing signal about near-miss tokens.
func (g *Gateway) Resolve(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	if token == "" {
		return nil, domain.ErrNotFound
	}

	ap, err := g.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !domain.TokenEqual(ap.ConfirmationToken, token) {
		return nil, domain.ErrNotFound
	}

	return ap, nil
}

// Confirm applies the client-side confirm transition.
func (g *Gateway) Confirm(
	ctx context.Context,
	token string,
) (*models.Appointment, []string, error) {

	ap, err := g.Resolve(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	expected := domain.Status(ap.Status)
	if err := domain.Confirm(ap, domain.ActorClient); err != nil {
		return nil, nil, err
	}

	if err := g.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	warnings := g.notifyWarn(ctx, ap, notification.EventConfirmed)

	g.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		Action:   "appointment_confirmed_by_client",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, warnings, nil
}

// CounterPropose stores the client's alternative datetime and message.
func (g *Gateway) CounterPropose(
	ctx context.Context,
	token string,
	newStart time.Time,
	message string,
) (*models.Appointment, []string, error) {

	ap, err := g.Resolve(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	expected := domain.Status(ap.Status)
	if err := domain.CounterPropose(ap, newStart, message); err != nil {
		return nil, nil, err
	}

	if err := g.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	warnings := g.notifyWarn(ctx, ap, notification.EventCounterProposed)

	g.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		Action:   "appointment_counter_proposed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"counter_proposal_datetime": newStart,
			"counter_proposal_message":  message,
		},
	})

	return ap, warnings, nil
}

func (g *Gateway) notifyWarn(
	ctx context.Context,
	ap *models.Appointment,
	kind notification.EventKind,
) []string {

	if g.notifier == nil {
		return nil
	}
	if err := g.notifier.Notify(ctx, ap, kind, notification.ChannelSMS); err != nil {
		return []string{"notification_failed"}
	}
	return nil
}
