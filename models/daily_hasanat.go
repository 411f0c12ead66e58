package models

import "time"

// DailyHasanat is the per-user per-date reward summary. It is always a full
// resum over the date's remaining sessions; inserts, edits, and deletes all
// rewrite the row rather than adjusting it incrementally.
type DailyHasanat struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index:idx_hasanat_user_date,unique;not null" json:"user_id"`
	Date         time.Time `gorm:"index:idx_hasanat_user_date,unique;type:date;not null" json:"date"`
	TotalLetters int       `gorm:"not null;default:0" json:"total_letters"`
	TotalHasanat int       `gorm:"not null;default:0" json:"total_hasanat"`
	SessionCount int       `gorm:"not null;default:0" json:"session_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
