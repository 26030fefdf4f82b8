package models

import "time"

// One row per staff member per weekday. Times are "15:04" strings in the
// salon's timezone; BreakStart/BreakEnd may be empty when there is no break.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StaffID  uint `gorm:"index;not null" json:"staff_id"`
	BranchID uint `gorm:"index" json:"branch_id"`

	Weekday int `json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
