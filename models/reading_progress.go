package models

import "time"

// ReadingProgress is the forward-only bookmark plus lifetime counters for
// one user. CurrentSurah/CurrentAyat point at the next unread position;
// TotalAyatRead never decreases and keeps growing across khatam wraps.
type ReadingProgress struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentSurah  int        `gorm:"not null;default:1" json:"current_surah"`
	CurrentAyat   int        `gorm:"not null;default:1" json:"current_ayat"`
	TotalAyatRead int        `gorm:"not null;default:0" json:"total_ayat_read"`
	KhatamCount   int        `gorm:"not null;default:0" json:"khatam_count"`
	LastReadAt    *time.Time `json:"last_read_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
