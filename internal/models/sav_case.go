package models

import "time"

// SavCase is a repair case (SAV ticket). Appointments reference it weakly.
type SavCase struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	CustomerID *uint `json:"customer_id"`

	CaseNumber  string `gorm:"size:50;uniqueIndex;not null" json:"case_number"`
	DeviceBrand string `gorm:"size:100" json:"device_brand"`
	DeviceModel string `gorm:"size:100" json:"device_model"`
	Issue       string `gorm:"size:255" json:"issue"`
	Status      string `gorm:"size:30;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
