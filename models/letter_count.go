package models

// LetterCount is one row of the per-verse letter-count reference table,
// seeded once from data/letter-counts.json and loaded into memory at boot.
type LetterCount struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	Surah   int  `gorm:"index:idx_letter_counts_pos,unique;not null" json:"surah"`
	Ayat    int  `gorm:"index:idx_letter_counts_pos,unique;not null" json:"ayat"`
	Letters int  `gorm:"not null" json:"letters"`
}
