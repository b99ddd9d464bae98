package models

import (
	"time"

	"gorm.io/datatypes"
)

type Appointment struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"not null" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	// Weak references: lookup only, all optional.
	SavCaseID    *uint `json:"sav_case_id"`
	CustomerID   *uint `json:"customer_id"`
	TechnicianID *uint `json:"technician_id"`

	StartDatetime   time.Time `json:"start_datetime"`
	DurationMinutes int       `json:"duration_minutes"`

	Status          string `gorm:"size:20;default:'proposed'" json:"status"`
	AppointmentType string `gorm:"size:20" json:"appointment_type"`
	ProposedBy      string `gorm:"size:10" json:"proposed_by"`

	// Bearer capability for the public confirmation endpoint. Generated at
	// creation, never rotated, lifetime equals the row's lifetime.
	ConfirmationToken string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	// Non-null iff Status == counter_proposed.
	CounterProposalDatetime *time.Time `json:"counter_proposal_datetime"`
	CounterProposalMessage  *string    `gorm:"size:500" json:"counter_proposal_message"`

	Notes      string            `gorm:"size:500" json:"notes"`
	DeviceInfo datatypes.JSONMap `json:"device_info"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
