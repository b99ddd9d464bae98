package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

// Dispatcher routes a lifecycle event to SMS or in-app chat. SMS goes to the
// appointment's customer and burns one shop SMS credit; chat appends to the
// customer's SAV case conversation.
type Dispatcher struct {
	db  *gorm.DB
	sms SMSSender

	// Base URL for the confirmation link in client-facing messages.
	publicBaseURL string
}

func NewDispatcher(db *gorm.DB, sms SMSSender, publicBaseURL string) *Dispatcher {
	return &Dispatcher{
		db:            db,
		sms:           sms,
		publicBaseURL: publicBaseURL,
	}
}

func (d *Dispatcher) Notify(
	ctx context.Context,
	ap *models.Appointment,
	kind EventKind,
	channel Channel,
) error {

	// Message times are civil times in the owning shop's timezone.
	var shop models.Shop
	if err := d.db.WithContext(ctx).First(&shop, ap.ShopID).Error; err != nil {
		return err
	}

	body := d.messageFor(ap, kind, &shop)

	switch channel {
	case ChannelSMS:
		return d.sendSMS(ctx, ap, &shop, kind, body)
	case ChannelChat:
		return d.sendChat(ctx, ap, body)
	default:
		return fmt.Errorf("unknown notification channel %q", channel)
	}
}

func (d *Dispatcher) sendSMS(ctx context.Context, ap *models.Appointment, shop *models.Shop, kind EventKind, body string) error {
	// A counter-proposal flows client -> shop; everything else flows
	// shop -> customer and consumes a tenant SMS credit.
	if kind == EventCounterProposed {
		if shop.Phone == "" {
			return errors.New("shop has no phone number")
		}
		return d.sms.Send(ctx, shop.Phone, body)
	}

	if ap.CustomerID == nil {
		return errors.New("appointment has no customer to notify")
	}

	var customer models.Customer
	if err := d.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", *ap.CustomerID, ap.ShopID).
		First(&customer).Error; err != nil {
		return err
	}
	if customer.Phone == "" {
		return errors.New("customer has no phone number")
	}

	if shop.SMSCredits <= 0 {
		return errors.New("shop has no sms credits left")
	}

	if err := d.sms.Send(ctx, customer.Phone, body); err != nil {
		return err
	}

	return d.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ? AND sms_credits > 0", shop.ID).
		UpdateColumn("sms_credits", gorm.Expr("sms_credits - 1")).Error
}

func (d *Dispatcher) sendChat(ctx context.Context, ap *models.Appointment, body string) error {
	msg := models.ChatMessage{
		ShopID:     ap.ShopID,
		CustomerID: ap.CustomerID,
		SavCaseID:  ap.SavCaseID,
		MessageID:  uuid.NewString(),
		Sender:     "shop",
		Body:       body,
	}
	return d.db.WithContext(ctx).Create(&msg).Error
}

func (d *Dispatcher) messageFor(ap *models.Appointment, kind EventKind, shop *models.Shop) string {
	loc := timezone.Location(shop.Timezone)
	when := ap.StartDatetime.In(loc).Format("02/01/2006 15:04")

	switch kind {
	case EventProposed:
		return fmt.Sprintf(
			"Appointment proposed for %s (%d min). Confirm or suggest another time: %s/c/%s",
			when, ap.DurationMinutes, d.publicBaseURL, ap.ConfirmationToken,
		)
	case EventConfirmed:
		return fmt.Sprintf("Your appointment on %s is confirmed.", when)
	case EventCounterProposed:
		alt := ""
		if ap.CounterProposalDatetime != nil {
			alt = ap.CounterProposalDatetime.In(loc).Format("02/01/2006 15:04")
		}
		return fmt.Sprintf("The client proposed another time for the appointment: %s.", alt)
	case EventCancelled:
		return fmt.Sprintf("The appointment planned on %s was cancelled.", when)
	default:
		return fmt.Sprintf("Appointment update (%s).", kind)
	}
}

var _ Notifier = (*Dispatcher)(nil)
