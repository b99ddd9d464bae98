package notification

import (
	"context"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

type EventKind string

const (
	EventProposed        EventKind = "proposed"
	EventConfirmed       EventKind = "confirmed"
	EventCounterProposed EventKind = "counter_proposed"
	EventCancelled       EventKind = "cancelled"
)

type Channel string

const (
	ChannelSMS  Channel = "sms"
	ChannelChat Channel = "chat"
)

func (ch Channel) Valid() bool {
	return ch == ChannelSMS || ch == ChannelChat
}

// Notifier delivers one lifecycle event about an appointment. Delivery
// failure never rolls back the transition that triggered it; callers turn
// the error into a partial-success warning.
type Notifier interface {
	Notify(ctx context.Context, ap *models.Appointment, kind EventKind, channel Channel) error
}
