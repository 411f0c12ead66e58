package engine

import (
	"math"

	"github.com/miqra/miqra-server/quran"
)

// Coverage tracks the set of distinct ayat a user has ever read, across the
// entire session history. It is deliberately independent of the forward-only
// cursor: a reader who restarts surah 1 every week has low cursor progress
// but still gets credit here for every verse they have actually touched.
type Coverage struct {
	read map[quran.Position]struct{}
}

// AyatRange is one contiguous run of verses within a single surah.
type AyatRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SurahCoverage summarizes how much of one surah has been read.
type SurahCoverage struct {
	Surah         int         `json:"surah"`
	Read          int         `json:"read"`
	Total         int         `json:"total"`
	Percentage    float64     `json:"percentage"`
	MissingRanges []AyatRange `json:"missing_ranges"`
}

// NewCoverage returns an empty coverage set.
func NewCoverage() *Coverage {
	return &Coverage{read: make(map[quran.Position]struct{})}
}

// RecordRange marks every ayat in [start, end] of the surah as read.
// Re-recording an already-covered range is a no-op, so replaying history is
// always safe.
func (c *Coverage) RecordRange(surah, start, end int) {
	for ayat := start; ayat <= end; ayat++ {
		if !quran.ValidPosition(surah, ayat) {
			continue
		}
		c.read[quran.Position{Surah: surah, Ayat: ayat}] = struct{}{}
	}
}

// Contains reports whether one ayat has ever been read.
func (c *Coverage) Contains(surah, ayat int) bool {
	_, ok := c.read[quran.Position{Surah: surah, Ayat: ayat}]
	return ok
}

// Count returns the number of distinct ayat read.
func (c *Coverage) Count() int {
	return len(c.read)
}

// Remaining returns how many ayat of the corpus have never been read.
func (c *Coverage) Remaining() int {
	return quran.TotalAyat - len(c.read)
}

// Percentage returns true completion over the whole corpus, rounded to one
// decimal.
func (c *Coverage) Percentage() float64 {
	pct := float64(len(c.read)) / float64(quran.TotalAyat) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}

// ForSurah reports per-surah coverage including the maximal contiguous runs
// of unread verses.
func (c *Coverage) ForSurah(surah int) SurahCoverage {
	total := quran.AyatCount(surah)
	if total == 0 {
		return SurahCoverage{Surah: surah, MissingRanges: []AyatRange{}}
	}

	read := 0
	missing := []AyatRange{}
	gapStart := 0
	for ayat := 1; ayat <= total; ayat++ {
		if c.Contains(surah, ayat) {
			read++
			if gapStart != 0 {
				missing = append(missing, AyatRange{Start: gapStart, End: ayat - 1})
				gapStart = 0
			}
		} else if gapStart == 0 {
			gapStart = ayat
		}
	}
	if gapStart != 0 {
		missing = append(missing, AyatRange{Start: gapStart, End: total})
	}

	return SurahCoverage{
		Surah:         surah,
		Read:          read,
		Total:         total,
		Percentage:    math.Round(float64(read)/float64(total)*1000) / 10,
		MissingRanges: missing,
	}
}

// NextUnread scans forward from the given position, wrapping from surah 114
// back to surah 1, and returns the first ayat not yet read. When the whole
// corpus is covered it returns (1, 1).
func (c *Coverage) NextUnread(fromSurah, fromAyat int) quran.Position {
	if !quran.ValidPosition(fromSurah, fromAyat) {
		fromSurah, fromAyat = 1, 1
	}
	pos := quran.Position{Surah: fromSurah, Ayat: fromAyat}
	for i := 0; i < quran.TotalAyat; i++ {
		if _, ok := c.read[pos]; !ok {
			return pos
		}
		pos, _ = quran.NextPosition(pos.Surah, pos.Ayat)
	}
	return quran.Position{Surah: 1, Ayat: 1}
}

// SessionRange is the slice of a reading session that coverage cares about.
type SessionRange struct {
	Surah     int
	AyatStart int
	AyatEnd   int
}

// CoverageFromSessions rebuilds the unique set from a full session history.
// Order does not matter; the set is the same whichever way history replays.
func CoverageFromSessions(sessions []SessionRange) *Coverage {
	c := NewCoverage()
	for _, s := range sessions {
		c.RecordRange(s.Surah, s.AyatStart, s.AyatEnd)
	}
	return c
}
