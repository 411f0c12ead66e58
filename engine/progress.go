package engine

import (
	"math"

	"github.com/miqra/miqra-server/quran"
)

// Progress is the forward-only reading cursor plus lifetime counters.
// CurrentSurah/CurrentAyat point at the next unread position; TotalAyatRead
// is a lifetime count that keeps growing across khatam wraps and re-reads;
// KhatamCount counts full corpus wraps passed by the cursor specifically.
type Progress struct {
	CurrentSurah  int `json:"current_surah"`
	CurrentAyat   int `json:"current_ayat"`
	TotalAyatRead int `json:"total_ayat_read"`
	KhatamCount   int `json:"khatam_count"`
}

// NewProgress returns the starting state for a user with no reading history.
func NewProgress() Progress {
	return Progress{CurrentSurah: 1, CurrentAyat: 1}
}

// Advance applies one reading session to the progress state and returns the
// result. The session is assumed validated against the corpus bounds.
//
// A session at or past the cursor moves the cursor to the position after its
// last ayat, wrapping from the end of surah 114 to (1,1) and counting a
// khatam. A session strictly behind the cursor never regresses the bookmark,
// but its verses still count toward TotalAyatRead.
func (p Progress) Advance(surah, ayatStart, ayatEnd int) Progress {
	delta := ayatEnd - ayatStart + 1
	next := p
	next.TotalAyatRead += delta

	forward := surah > p.CurrentSurah ||
		(surah == p.CurrentSurah && ayatEnd >= p.CurrentAyat)
	if !forward {
		return next
	}

	pos, wrapped := quran.NextPosition(surah, ayatEnd)
	next.CurrentSurah = pos.Surah
	next.CurrentAyat = pos.Ayat
	if wrapped {
		next.KhatamCount++
	}
	return next
}

// LapAyatRead returns how far into the current lap the lifetime counter is,
// in verses.
func LapAyatRead(totalAyatRead int) int {
	lap := totalAyatRead % quran.TotalAyat
	if lap < 0 {
		lap += quran.TotalAyat
	}
	return lap
}

// LapPercentage returns progress within the current lap as a percentage
// rounded to one decimal. This is sequential-lap progress, not unique
// coverage; re-reads behind the cursor inflate it on purpose.
func LapPercentage(totalAyatRead int) float64 {
	pct := float64(LapAyatRead(totalAyatRead)) / float64(quran.TotalAyat) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}

// LapRemaining returns how many verses remain in the current lap.
func LapRemaining(totalAyatRead int) int {
	return quran.TotalAyat - LapAyatRead(totalAyatRead)
}
