package models

import "time"

// Streak is the cached streak state for one user, derived from the CheckIn
// date set. The orchestrator rewrites it after every check-in mutation and
// the read path self-heals it whenever it drifts from the recomputation.
type Streak struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Current   int        `gorm:"not null;default:0" json:"current"`
	Longest   int        `gorm:"not null;default:0" json:"longest"`
	LastDate  *time.Time `gorm:"type:date" json:"last_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
