package models

import "time"

// ReadingSession is one immutable reading event: a contiguous ayat range in
// one surah on one calendar date. Sessions are append-only; the only
// mutations are explicit edits and deletes, and both force the orchestrator
// to recompute every aggregate derived from the affected date.
//
// ClientToken is a client-generated UUID making LogSession retries safe: a
// resubmission with the same token is answered with the original row instead
// of double-counting.
type ReadingSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_sessions_user_date;index:idx_sessions_user_token,unique;not null" json:"user_id"`
	SurahNumber int       `gorm:"not null" json:"surah_number"`
	AyatStart   int       `gorm:"not null" json:"ayat_start"`
	AyatEnd     int       `gorm:"not null" json:"ayat_end"`
	AyatCount   int       `gorm:"not null" json:"ayat_count"`
	Date        time.Time `gorm:"index:idx_sessions_user_date;type:date;not null" json:"date"`
	SessionTime time.Time `gorm:"not null" json:"session_time"`
	Notes       string    `gorm:"size:500" json:"notes"`
	ClientToken string    `gorm:"size:36;index:idx_sessions_user_token,unique" json:"client_token"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
