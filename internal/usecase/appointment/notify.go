package appointment

import (
	"context"
	"log"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
)

const WarningNotificationFailed = "notification_failed"

// notifyWarn delivers a lifecycle notification and degrades a failure into a
// warning string. The transition has already committed at this point; a
// broken SMS gateway must not turn it into an error.
func notifyWarn(
	ctx context.Context,
	n notification.Notifier,
	ap *models.Appointment,
	kind notification.EventKind,
	channel notification.Channel,
) []string {

	if n == nil {
		return nil
	}
	if err := n.Notify(ctx, ap, kind, channel); err != nil {
		log.Printf("notification failed (appointment %d, event %s): %v", ap.ID, kind, err)
		return []string{WarningNotificationFailed}
	}
	return nil
}
