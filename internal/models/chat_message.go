package models

import "time"

// ChatMessage is an in-app message shown to the customer on the SAV case
// page. The notification dispatcher writes one per lifecycle event when the
// chat channel is selected.
type ChatMessage struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	CustomerID *uint `json:"customer_id"`
	SavCaseID  *uint `json:"sav_case_id"`

	MessageID string `gorm:"size:36;uniqueIndex" json:"message_id"`
	Sender    string `gorm:"size:10;default:'shop'" json:"sender"`
	Body      string `gorm:"size:1000;not null" json:"body"`

	CreatedAt time.Time `json:"created_at"`
}
