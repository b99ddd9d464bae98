package appointment

import (
	"fmt"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

// Candidate slot starts span the nominal business day regardless of the
// configured hours; the resolver then filters out closed instants.
const (
	NominalDayStartMinute = 7 * 60  // 07:00
	NominalDayEndMinute   = 20 * 60 // 20:00

	DefaultGranularityMinutes = 30
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotsFor lists the open slot-start times on the given date at the given
// granularity, ascending. Occupied slots are NOT removed here: double-booking
// is allowed by policy and surfaced to the booking actor as a soft warning.
func SlotsFor(r *WorkingHoursResolver, date time.Time, granularityMinutes int) ([]TimeSlot, error) {
	if granularityMinutes <= 0 {
		return nil, &ValidationError{Field: "granularity", Reason: "must be positive"}
	}

	loc := date.Location()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	slots := []TimeSlot{}
	for m := NominalDayStartMinute; m < NominalDayEndMinute; m += granularityMinutes {
		at := midnight.Add(time.Duration(m) * time.Minute)
		if !r.IsOpenAt(at) {
			continue
		}
		slots = append(slots, TimeSlot{
			Start: formatMinute(m),
			End:   formatMinute(m + granularityMinutes),
		})
	}
	return slots, nil
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// OverlapsAny reports whether [start, end) intersects any existing booking.
// Intervals are half-open, so back-to-back appointments do not collide.
// Used only for the advisory soft-conflict warning.
func OverlapsAny(start, end time.Time, existing []models.Appointment) bool {
	for _, ap := range existing {
		if Status(ap.Status).Terminal() {
			continue
		}
		apEnd := ap.StartDatetime.Add(time.Duration(ap.DurationMinutes) * time.Minute)
		if start.Before(apEnd) && ap.StartDatetime.Before(end) {
			return true
		}
	}
	return false
}
