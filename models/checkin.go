package models

import "time"

// CheckIn is the one-per-user-per-date summary of verses read. It is written
// only by the orchestrator as a full resum over the date's sessions, never
// incremented in place, and its date set is the sole source of truth for
// streak computation.
type CheckIn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_checkins_user_date,unique;not null" json:"user_id"`
	Date      time.Time `gorm:"index:idx_checkins_user_date,unique;type:date;not null" json:"date"`
	AyatCount int       `gorm:"not null;default:0" json:"ayat_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
