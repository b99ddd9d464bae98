package appointment

import (
	"context"
	"time"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Customer / SAV case (weak references) --------
	GetCustomer(
		ctx context.Context,
		shopID uint,
		customerID uint,
	) (*models.Customer, error)

	GetSavCase(
		ctx context.Context,
		shopID uint,
		savCaseID uint,
	) (*models.SavCase, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		shopID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// UpdateAppointmentGuarded persists ap conditionally on the row still
	// holding the expected status ("UPDATE … WHERE id = ? AND status = ?").
	// Zero rows affected means the transition lost a race: ErrConflict if
	// the row still exists, ErrNotFound if it was deleted.
	UpdateAppointmentGuarded(
		ctx context.Context,
		ap *models.Appointment,
		expected Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		shopID uint,
		appointmentID uint,
	) error

	// -------- Listings --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		shopID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListPendingCounterProposals(
		ctx context.Context,
		shopID uint,
	) ([]models.Appointment, error)

	// -------- Working hours --------
	ListWorkingHours(
		ctx context.Context,
		shopID uint,
	) ([]models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		shopID uint,
		rows []models.WorkingHours,
	) error
}
