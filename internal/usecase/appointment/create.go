package appointment

import (
	"context"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/audit"
	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/notification"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/timezone"
)

// Soft-conflict warnings: booking proceeds anyway, the actor is informed.
const (
	WarningOutsideWorkingHours = "outside_working_hours"
	WarningSlotOccupied        = "slot_occupied"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ShopID       uint
	UserID       *uint
	SavCaseID    *uint
	CustomerID   *uint
	TechnicianID *uint

	Date string // YYYY-MM-DD, shop-local
	Time string // HH:MM, shop-local

	DurationMinutes int
	Type            domain.Type
	ProposedBy      domain.Actor

	Notes      string
	DeviceInfo map[string]any
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier notification.Notifier
	audit    *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier notification.Notifier,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, []string, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, nil, &domain.ValidationError{Field: "start_datetime", Reason: "expected YYYY-MM-DD and HH:MM"}
	}

	// Weak references are looked up only to reject dangling ids.
	if in.CustomerID != nil {
		if _, err := uc.repo.GetCustomer(ctx, in.ShopID, *in.CustomerID); err != nil {
			return nil, nil, &domain.ValidationError{Field: "customer_id", Reason: "unknown customer"}
		}
	}
	if in.SavCaseID != nil {
		if _, err := uc.repo.GetSavCase(ctx, in.ShopID, *in.SavCaseID); err != nil {
			return nil, nil, &domain.ValidationError{Field: "sav_case_id", Reason: "unknown sav case"}
		}
	}

	ap, err := domain.New(domain.NewInput{
		ShopID:          in.ShopID,
		SavCaseID:       in.SavCaseID,
		CustomerID:      in.CustomerID,
		TechnicianID:    in.TechnicianID,
		Start:           start,
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
		ProposedBy:      in.ProposedBy,
		Notes:           in.Notes,
		DeviceInfo:      in.DeviceInfo,
	})
	if err != nil {
		return nil, nil, err
	}

	// Advisory checks only: outside-hours and occupied slots are allowed
	// by policy, the booking actor just gets told.
	warnings := uc.softConflicts(ctx, shop, ap)

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, nil, err
	}

	warnings = append(warnings, notifyWarn(
		ctx, uc.notifier, ap,
		notification.EventProposed,
		notification.ChannelSMS,
	)...)

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"warnings": warnings},
	})

	return ap, warnings, nil
}

func (uc *CreateAppointment) softConflicts(
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
	if err == nil && domain.OverlapsAny(ap.StartDatetime, domain.End(ap), existing) {
		warnings = append(warnings, WarningSlotOccupied)
	}

	return warnings
}
