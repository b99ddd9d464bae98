package appointment

import (
	"testing"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

func slotStarts(slots []TimeSlot) map[string]bool {
	m := make(map[string]bool, len(slots))
	for _, s := range slots {
		m[s.Start] = true
	}
	return m
}

func TestSlotsFor_BreakExcluded(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, true, "09:00", "18:00", "12:00", "13:00"),
	})

	slots, err := SlotsFor(r, monday(0, 0), 30)
	if err != nil {
		t.Fatalf("SlotsFor: %v", err)
	}

	starts := slotStarts(slots)
	for _, want := range []string{"09:00", "11:30", "13:00", "17:30"} {
		if !starts[want] {
			t.Fatalf("expected slot at %s, got %v", want, slots)
		}
	}
	for _, banned := range []string{"08:30", "12:00", "12:30", "18:00"} {
		if starts[banned] {
			t.Fatalf("slot at %s should be excluded", banned)
		}
	}

	// 09:00-12:00 and 13:00-18:00 at 30 min granularity.
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
}

func TestSlotsFor_Ascending(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, true, "09:00", "18:00", "", ""),
	})

	slots, err := SlotsFor(r, monday(0, 0), 30)
	if err != nil {
		t.Fatalf("SlotsFor: %v", err)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1].Start >= slots[i].Start {
			t.Fatalf("slots not ascending: %s before %s", slots[i-1].Start, slots[i].Start)
		}
	}
}

func TestSlotsFor_ClosedDayIsEmpty(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, false, "", "", "", ""),
	})

	slots, err := SlotsFor(r, monday(0, 0), 30)
	if err != nil {
		t.Fatalf("SlotsFor: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestSlotsFor_UnconfiguredShopGetsFullNominalDay(t *testing.T) {
	r := NewWorkingHoursResolver(nil)

	slots, err := SlotsFor(r, monday(0, 0), 30)
	if err != nil {
		t.Fatalf("SlotsFor: %v", err)
	}

	// 07:00 through 19:30.
	if len(slots) != 26 {
		t.Fatalf("expected 26 slots, got %d", len(slots))
	}
	if slots[0].Start != "07:00" || slots[len(slots)-1].Start != "19:30" {
		t.Fatalf("unexpected bounds: %s .. %s", slots[0].Start, slots[len(slots)-1].Start)
	}
}

func TestSlotsFor_InvalidGranularity(t *testing.T) {
	r := NewWorkingHoursResolver(nil)
	if _, err := SlotsFor(r, monday(0, 0), 0); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOverlapsAny(t *testing.T) {
	existing := []models.Appointment{
		{StartDatetime: monday(10, 0), DurationMinutes: 60, Status: string(StatusConfirmed)},
		{StartDatetime: monday(14, 0), DurationMinutes: 30, Status: string(StatusCancelled)},
	}

	cases := []struct {
		start, end time.Time
		want       bool
	}{
		{monday(9, 0), monday(10, 0), false},  // back-to-back before
		{monday(10, 30), monday(11, 0), true}, // inside
		{monday(11, 0), monday(11, 30), false}, // back-to-back after
		{monday(9, 30), monday(10, 30), true},  // straddles start
		{monday(14, 0), monday(14, 30), false}, // cancelled rows do not occupy
	}

	for _, tt := range cases {
		if got := OverlapsAny(tt.start, tt.end, existing); got != tt.want {
			t.Fatalf("OverlapsAny(%s, %s)=%v, want %v",
				tt.start.Format("15:04"), tt.end.Format("15:04"), got, tt.want)
		}
	}
}
