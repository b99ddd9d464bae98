package models

import "time"

// WorkingHours is one row per shop per weekday (0 = Sunday … 6 = Saturday).
// Times are "HH:MM" strings in the shop's local timezone.
// BreakStart/BreakEnd are both set or both empty.
type WorkingHours struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index:idx_working_hours_shop_weekday,unique" json:"shop_id"`

	Weekday int `gorm:"index:idx_working_hours_shop_weekday,unique" json:"weekday"`

	IsOpen     bool   `json:"is_open"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
