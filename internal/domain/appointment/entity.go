package appointment

import (
	"time"

	"gorm.io/datatypes"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

// ===============================
// Appointment type
// ===============================

type Type string

const (
	TypeDeposit    Type = "deposit"
	TypePickup     Type = "pickup"
	TypeDiagnostic Type = "diagnostic"
	TypeRepair     Type = "repair"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDeposit, TypePickup, TypeDiagnostic, TypeRepair:
		return true
	}
	return false
}

// ===============================
// Creation
// ===============================

type NewInput struct {
	ShopID       uint
	SavCaseID    *uint
	CustomerID   *uint
	TechnicianID *uint

	Start           time.Time
	DurationMinutes int
	Type            Type
	ProposedBy      Actor

	Notes      string
	DeviceInfo map[string]any
}

// New builds a proposed appointment with a fresh confirmation token. The
// token is generated exactly once; nothing in the lifecycle regenerates it.
func New(in NewInput) (*models.Appointment, error) {
	if in.Start.IsZero() {
		return nil, &ValidationError{Field: "start_datetime", Reason: "required"}
	}
	if in.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}
	if !in.Type.Valid() {
		return nil, &ValidationError{Field: "appointment_type", Reason: "unknown type"}
	}
	if in.ProposedBy != ActorShop && in.ProposedBy != ActorClient {
		return nil, &ValidationError{Field: "proposed_by", Reason: "unknown actor"}
	}

	token, err := NewConfirmationToken()
	if err != nil {
		return nil, err
	}

	return &models.Appointment{
		ShopID:            in.ShopID,
		SavCaseID:         in.SavCaseID,
		CustomerID:        in.CustomerID,
		TechnicianID:      in.TechnicianID,
		StartDatetime:     in.Start,
		DurationMinutes:   in.DurationMinutes,
		Status:            string(InitialStatus()),
		AppointmentType:   string(in.Type),
		ProposedBy:        string(in.ProposedBy),
		ConfirmationToken: token,
		Notes:             in.Notes,
		DeviceInfo:        datatypes.JSONMap(in.DeviceInfo),
	}, nil
}

// End returns the half-open end instant of the booked window.
func End(ap *models.Appointment) time.Time {
	return ap.StartDatetime.Add(time.Duration(ap.DurationMinutes) * time.Minute)
}

// ===============================
// Transitions
// ===============================

func Confirm(ap *models.Appointment, actor Actor) error {
	next, err := NextStatus(Status(ap.Status), ActionConfirm, actor)
	if err != nil {
		return err
	}
	ap.Status = string(next)
	return nil
}

func CounterPropose(ap *models.Appointment, newStart time.Time, message string) error {
	if newStart.IsZero() {
		return &ValidationError{Field: "counter_proposal_datetime", Reason: "required"}
	}

	next, err := NextStatus(Status(ap.Status), ActionCounterPropose, ActorClient)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.CounterProposalDatetime = &newStart
	if message != "" {
		ap.CounterProposalMessage = &message
	} else {
		ap.CounterProposalMessage = nil
	}
	return nil
}

// AcceptCounter adopts the client's datetime and clears the counter fields,
// keeping the iff-invariant between them and the status.
func AcceptCounter(ap *models.Appointment) error {
	next, err := NextStatus(Status(ap.Status), ActionAcceptCounter, ActorShop)
	if err != nil {
		return err
	}
	if ap.CounterProposalDatetime == nil {
		return &ValidationError{Field: "counter_proposal_datetime", Reason: "missing on counter-proposed appointment"}
	}

	ap.StartDatetime = *ap.CounterProposalDatetime
	ap.Status = string(next)
	ap.CounterProposalDatetime = nil
	ap.CounterProposalMessage = nil
	return nil
}

func RejectCounter(ap *models.Appointment) error {
	next, err := NextStatus(Status(ap.Status), ActionRejectCounter, ActorShop)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.CounterProposalDatetime = nil
	ap.CounterProposalMessage = nil
	return nil
}

func Cancel(ap *models.Appointment, actor Actor) error {
	next, err := NextStatus(Status(ap.Status), ActionCancel, actor)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.CounterProposalDatetime = nil
	ap.CounterProposalMessage = nil
	return nil
}

func Complete(ap *models.Appointment) error {
	next, err := NextStatus(Status(ap.Status), ActionComplete, ActorShop)
	if err != nil {
		return err
	}
	ap.Status = string(next)
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	next, err := NextStatus(Status(ap.Status), ActionMarkNoShow, ActorShop)
	if err != nil {
		return err
	}
	ap.Status = string(next)
	return nil
}

// ===============================
// Edit (plain field update, not a status change)
// ===============================

type EditInput struct {
	Start           *time.Time
	DurationMinutes *int
	Type            *Type
	Notes           *string
}

func Edit(ap *models.Appointment, in EditInput) error {
	if _, err := NextStatus(Status(ap.Status), ActionEdit, ActorShop); err != nil {
		return err
	}

	if in.Start != nil {
		if in.Start.IsZero() {
			return &ValidationError{Field: "start_datetime", Reason: "required"}
		}
		ap.StartDatetime = *in.Start
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
		}
		ap.DurationMinutes = *in.DurationMinutes
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return &ValidationError{Field: "appointment_type", Reason: "unknown type"}
		}
		ap.AppointmentType = string(*in.Type)
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	return nil
}
