package appointment

import (
	"context"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

type EditAppointmentInput struct {
	Date            *string // YYYY-MM-DD
	Time            *string // HH:MM
	DurationMinutes *int
	Type            *domain.Type
	Notes           *string
}

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute is a plain field update guarded only by "not terminal"; the status
// never changes here. Moving the datetime through an edit still reports soft
// conflicts the same way creation does.
func (uc *EditAppointment) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	appointmentID uint,
	in EditAppointmentInput,
) (*models.Appointment, []string, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, shopID, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	edit := domain.EditInput{
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		Notes:           in.Notes,
	}

	if in.Date != nil || in.Time != nil {
		if in.Date == nil || in.Time == nil {
			return nil, nil, &domain.ValidationError{Field: "start_datetime", Reason: "date and time must be supplied together"}
		}
		start, err := time.ParseInLocation(
			"2006-01-02 15:04",
			*in.Date+" "+*in.Time,
			timezone.Location(shop.Timezone),
		)
		if err != nil {
			return nil, nil, &domain.ValidationError{Field: "start_datetime", Reason: "expected YYYY-MM-DD and HH:MM"}
		}
		edit.Start = &start
	}

	expected := domain.Status(ap.Status)
	if err := domain.Edit(ap, edit); err != nil {
		return nil, nil, err
	}

	if err := uc.repo.UpdateAppointmentGuarded(ctx, ap, expected); err != nil {
		return nil, nil, err
	}

	warnings := uc.softConflicts(ctx, shop, ap)

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "appointment_edited",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, warnings, nil
}

func (uc *EditAppointment) softConflicts(
	ctx context.Context,
	shop *models.Shop,
	ap *models.Appointment,
) []string {

	warnings := []string{}

	rows, err := uc.repo.ListWorkingHours(ctx, shop.ID)
	if err == nil {
		resolver := domain.NewWorkingHoursResolver(rows)
		if !resolver.IsOpenAt(ap.StartDatetime) {
			warnings = append(warnings, WarningOutsideWorkingHours)
		}
	}

	loc := timezone.Location(shop.Timezone)
	dayStart := time.Date(
		ap.StartDatetime.Year(), ap.StartDatetime.Month(), ap.StartDatetime.Day(),
		0, 0, 0, 0, loc,
	)
	existing, err := uc.repo.ListAppointmentsForPeriod(ctx, shop.ID, dayStart, dayStart.Add(24*time.Hour))
	if err == nil {
		others := existing[:0:0]
		for _, e := range existing {
			if e.ID != ap.ID {
				others = append(others, e)
			}
		}
		if domain.OverlapsAny(ap.StartDatetime, domain.End(ap), others) {
			warnings = append(warnings, WarningSlotOccupied)
		}
	}

	return warnings
}
