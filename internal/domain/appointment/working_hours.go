package appointment

import (
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

// WorkingHoursResolver answers working-hours questions for one shop from its
// weekly schedule rows. All comparisons run in the shop's local civil time,
// so callers must pass instants already in the shop's location.
type WorkingHoursResolver struct {
	byWeekday map[int]models.WorkingHours
	empty     bool
}

func NewWorkingHoursResolver(rows []models.WorkingHours) *WorkingHoursResolver {
	m := make(map[int]models.WorkingHours, len(rows))
	for _, row := range rows {
		m[row.Weekday] = row
	}
	return &WorkingHoursResolver{byWeekday: m, empty: len(rows) == 0}
}

// Unrestricted reports whether the shop has no schedule configured at all.
// Such shops are treated as always open; this is the documented fallback for
// unconfigured tenants, not an error.
func (r *WorkingHoursResolver) Unrestricted() bool {
	return r.empty
}

func (r *WorkingHoursResolver) HoursFor(weekday int) (models.WorkingHours, bool) {
	wh, ok := r.byWeekday[weekday]
	return wh, ok
}

// IsOpenAt reports whether the shop is open at the given instant.
func (r *WorkingHoursResolver) IsOpenAt(at time.Time) bool {
	if r.empty {
		return true
	}

	wh, ok := r.byWeekday[int(at.Weekday())]
	if !ok || !wh.IsOpen {
		return false
	}

	minute := at.Hour()*60 + at.Minute()

	start, ok := parseHM(wh.StartTime)
	if !ok {
		return false
	}
	end, ok := parseHM(wh.EndTime)
	if !ok {
		return false
	}

	if minute < start || minute >= end {
		return false
	}

	// Break window is half-open: the break end minute itself is open.
	if wh.BreakStart != "" && wh.BreakEnd != "" {
		bs, okS := parseHM(wh.BreakStart)
		be, okE := parseHM(wh.BreakEnd)
		if okS && okE && minute >= bs && minute < be {
			return false
		}
	}

	return true
}

// parseHM converts "HH:MM" to minutes since midnight.
func parseHM(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// ValidateWeeklyRow checks the start < break_start < break_end < end
// invariant on a configured row. Rows with is_open=false are not inspected.
func ValidateWeeklyRow(wh models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return &ValidationError{Field: "weekday", Reason: "must be 0-6"}
	}
	if !wh.IsOpen {
		return nil
	}

	start, ok := parseHM(wh.StartTime)
	if !ok {
		return &ValidationError{Field: "start_time", Reason: "must be HH:MM"}
	}
	end, ok := parseHM(wh.EndTime)
	if !ok {
		return &ValidationError{Field: "end_time", Reason: "must be HH:MM"}
	}
	if start >= end {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}

	hasBreakStart := wh.BreakStart != ""
	hasBreakEnd := wh.BreakEnd != ""
	if hasBreakStart != hasBreakEnd {
		return &ValidationError{Field: "break_start", Reason: "break_start and break_end must both be set or both empty"}
	}
	if hasBreakStart {
		bs, ok := parseHM(wh.BreakStart)
		if !ok {
			return &ValidationError{Field: "break_start", Reason: "must be HH:MM"}
		}
		be, ok := parseHM(wh.BreakEnd)
		if !ok {
			return &ValidationError{Field: "break_end", Reason: "must be HH:MM"}
		}
		if !(start < bs && bs < be && be < end) {
			return &ValidationError{Field: "break_start", Reason: "break must fall strictly inside opening hours"}
		}
	}
	return nil
}
