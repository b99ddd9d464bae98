package appointment

import (
	"testing"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

// Monday 2025-03-10 in UTC for civil-time assertions.
func monday(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func weekdayRow(weekday int, open bool, start, end, breakStart, breakEnd string) models.WorkingHours {
	return models.WorkingHours{
		ShopID:     1,
		Weekday:    weekday,
		IsOpen:     open,
		StartTime:  start,
		EndTime:    end,
		BreakStart: breakStart,
		BreakEnd:   breakEnd,
	}
}

func TestIsOpenAt_NoConfigurationMeansAlwaysOpen(t *testing.T) {
	r := NewWorkingHoursResolver(nil)

	if !r.Unrestricted() {
		t.Fatal("expected resolver with no rows to be unrestricted")
	}
	for _, at := range []time.Time{monday(0, 0), monday(3, 30), monday(12, 15), monday(23, 59)} {
		if !r.IsOpenAt(at) {
			t.Fatalf("unconfigured shop should be open at %s", at)
		}
	}
}

func TestIsOpenAt_ClosedWeekday(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, false, "09:00", "18:00", "", ""),
	})

	for hour := 0; hour < 24; hour++ {
		if r.IsOpenAt(monday(hour, 0)) {
			t.Fatalf("closed weekday should be closed at %02d:00", hour)
		}
	}
}

func TestIsOpenAt_MissingWeekdayWithOtherRowsIsClosed(t *testing.T) {
	// Tuesday configured, Monday absent: a shop that configured any
	// schedule gets no open-by-default fallback.
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(2, true, "09:00", "18:00", "", ""),
	})

	if r.IsOpenAt(monday(10, 0)) {
		t.Fatal("weekday without a row should be closed when other rows exist")
	}
}

func TestIsOpenAt_Boundaries(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, true, "09:00", "18:00", "12:00", "13:00"),
	})

	cases := []struct {
		at   time.Time
		open bool
	}{
		{monday(8, 59), false},
		{monday(9, 0), true},  // opening minute is open
		{monday(11, 59), true},
		{monday(12, 0), false}, // break start is closed
		{monday(12, 59), false},
		{monday(13, 0), true}, // break end minute itself is open
		{monday(17, 59), true},
		{monday(18, 0), false}, // closing minute is closed
		{monday(20, 0), false},
	}

	for _, tt := range cases {
		if got := r.IsOpenAt(tt.at); got != tt.open {
			t.Fatalf("IsOpenAt(%s)=%v, want %v", tt.at.Format("15:04"), got, tt.open)
		}
	}
}

func TestHoursFor(t *testing.T) {
	r := NewWorkingHoursResolver([]models.WorkingHours{
		weekdayRow(1, true, "09:00", "18:00", "", ""),
	})

	if _, ok := r.HoursFor(1); !ok {
		t.Fatal("expected hours for weekday 1")
	}
	if _, ok := r.HoursFor(3); ok {
		t.Fatal("expected no hours for weekday 3")
	}
}

func TestValidateWeeklyRow(t *testing.T) {
	cases := []struct {
		name string
		row  models.WorkingHours
		ok   bool
	}{
		{"closed day skips checks", weekdayRow(0, false, "", "", "", ""), true},
		{"plain day", weekdayRow(1, true, "09:00", "18:00", "", ""), true},
		{"day with break", weekdayRow(1, true, "09:00", "18:00", "12:00", "13:00"), true},
		{"bad weekday", weekdayRow(7, true, "09:00", "18:00", "", ""), false},
		{"end before start", weekdayRow(1, true, "18:00", "09:00", "", ""), false},
		{"break start only", weekdayRow(1, true, "09:00", "18:00", "12:00", ""), false},
		{"break outside hours", weekdayRow(1, true, "09:00", "18:00", "08:00", "10:00"), false},
		{"break inverted", weekdayRow(1, true, "09:00", "18:00", "13:00", "12:00"), false},
		{"break touching end", weekdayRow(1, true, "09:00", "18:00", "17:00", "18:00"), false},
		{"garbage time", weekdayRow(1, true, "9am", "18:00", "", ""), false},
	}

	for _, tt := range cases {
		err := ValidateWeeklyRow(tt.row)
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}
