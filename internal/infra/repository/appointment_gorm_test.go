package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/didierjondet/sav-pro-fix-sub003/internal/domain/appointment"
	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

func newTestRepo(t *testing.T) *AppointmentGormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Shop{},
		&models.Customer{},
		&models.SavCase{},
		&models.WorkingHours{},
		&models.Appointment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewAppointmentGormRepository(db)
}

func seedAppointment(t *testing.T, repo *AppointmentGormRepository, shopID uint) *models.Appointment {
	t.Helper()

	ap, err := domain.New(domain.NewInput{
		ShopID:          shopID,
		Start:           time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Type:            domain.TypeDeposit,
		ProposedBy:      domain.ActorShop,
	})
	if err != nil {
		t.Fatalf("domain.New: %v", err)
	}
	if err := repo.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	return ap
}

func TestGetAppointment_TenantScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ap := seedAppointment(t, repo, 1)

	got, err := repo.GetAppointment(ctx, 1, ap.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.ID != ap.ID {
		t.Fatalf("got id %d, want %d", got.ID, ap.ID)
	}

	// Another tenant must not see the row.
	if _, err := repo.GetAppointment(ctx, 2, ap.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-tenant read: expected ErrNotFound, got %v", err)
	}
}

func TestGetAppointmentByToken(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ap := seedAppointment(t, repo, 1)

	got, err := repo.GetAppointmentByToken(ctx, ap.ConfirmationToken)
	if err != nil {
		t.Fatalf("GetAppointmentByToken: %v", err)
	}
	if got.ID != ap.ID {
		t.Fatalf("got id %d, want %d", got.ID, ap.ID)
	}

	if _, err := repo.GetAppointmentByToken(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown token: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppointmentGuarded_StaleStatusConflicts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ap := seedAppointment(t, repo, 1)

	// First writer wins.
	first := *ap
	if err := domain.Confirm(&first, domain.ActorShop); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if err := repo.UpdateAppointmentGuarded(ctx, &first, domain.StatusProposed); err != nil {
		t.Fatalf("first guarded update: %v", err)
	}

	// Second writer read "proposed" before the race and must lose.
	second := *ap
	if err := domain.Cancel(&second, domain.ActorShop); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	err := repo.UpdateAppointmentGuarded(ctx, &second, domain.StatusProposed)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("stale guarded update: expected ErrConflict, got %v", err)
	}

	got, err := repo.GetAppointment(ctx, 1, ap.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}
}

func TestUpdateAppointmentGuarded_DeletedRowIsNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ap := seedAppointment(t, repo, 1)

	if err := repo.DeleteAppointment(ctx, 1, ap.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}

	if err := domain.Confirm(ap, domain.ActorShop); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	err := repo.UpdateAppointmentGuarded(ctx, ap, domain.StatusProposed)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateAppointmentGuarded_ClearsCounterFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	ap := seedAppointment(t, repo, 1)

	if err := domain.CounterPropose(ap, time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC), "prefer afternoon"); err != nil {
		t.Fatalf("CounterPropose: %v", err)
	}
	if err := repo.UpdateAppointmentGuarded(ctx, ap, domain.StatusProposed); err != nil {
		t.Fatalf("guarded update: %v", err)
	}

	if err := domain.AcceptCounter(ap); err != nil {
		t.Fatalf("AcceptCounter: %v", err)
	}
	if err := repo.UpdateAppointmentGuarded(ctx, ap, domain.StatusCounterProposed); err != nil {
		t.Fatalf("guarded update: %v", err)
	}

	got, err := repo.GetAppointment(ctx, 1, ap.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", got.Status)
	}
	if got.CounterProposalDatetime != nil || got.CounterProposalMessage != nil {
		t.Fatal("counter fields must be nulled in storage after acceptance")
	}
	if !got.StartDatetime.Equal(time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %s, want accepted counter datetime", got.StartDatetime)
	}
}

func TestDeleteAppointment_MissingRow(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.DeleteAppointment(context.Background(), 1, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAppointmentsForPeriod(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mk := func(day, hour int) {
		ap, err := domain.New(domain.NewInput{
			ShopID:          1,
			Start:           time.Date(2025, 3, day, hour, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Type:            domain.TypeRepair,
			ProposedBy:      domain.ActorShop,
		})
		if err != nil {
			t.Fatalf("domain.New: %v", err)
		}
		if err := repo.CreateAppointment(ctx, ap); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
	}
	mk(10, 9)
	mk(10, 15)
	mk(11, 9) // outside the window

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	aps, err := repo.ListAppointmentsForPeriod(ctx, 1, from, to)
	if err != nil {
		t.Fatalf("ListAppointmentsForPeriod: %v", err)
	}
	if len(aps) != 2 {
		t.Fatalf("got %d appointments, want 2", len(aps))
	}
	if !aps[0].StartDatetime.Before(aps[1].StartDatetime) {
		t.Fatal("listing must be ordered by start ascending")
	}
}

func TestReplaceWorkingHours(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := []models.WorkingHours{
		{Weekday: 1, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: 2, IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
	}
	if err := repo.ReplaceWorkingHours(ctx, 1, first); err != nil {
		t.Fatalf("ReplaceWorkingHours: %v", err)
	}

	second := []models.WorkingHours{
		{Weekday: 3, IsOpen: true, StartTime: "10:00", EndTime: "16:00"},
	}
	if err := repo.ReplaceWorkingHours(ctx, 1, second); err != nil {
		t.Fatalf("ReplaceWorkingHours: %v", err)
	}

	rows, err := repo.ListWorkingHours(ctx, 1)
	if err != nil {
		t.Fatalf("ListWorkingHours: %v", err)
	}
	if len(rows) != 1 || rows[0].Weekday != 3 {
		t.Fatalf("replacement must be total, got %+v", rows)
	}
}
