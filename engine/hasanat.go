package engine

import "github.com/miqra/miqra-server/quran"

// HasanatPerLetter is the fixed reward multiplier: every Arabic letter read
// earns ten hasanat.
const HasanatPerLetter = 10

// HasanatTotal is the reward summary for a verse range or a day.
type HasanatTotal struct {
	Letters int `json:"letters"`
	Hasanat int `json:"hasanat"`
}

// ComputeHasanatForRange sums the per-verse letter counts over
// [ayatStart, ayatEnd] of the surah and applies the reward multiplier. Pure,
// so the UI can preview a session's reward before committing it.
func ComputeHasanatForRange(table *quran.LetterCounts, surah, ayatStart, ayatEnd int) HasanatTotal {
	letters := 0
	for ayat := ayatStart; ayat <= ayatEnd; ayat++ {
		letters += table.Lookup(surah, ayat)
	}
	return HasanatTotal{Letters: letters, Hasanat: letters * HasanatPerLetter}
}

// ComputeDailyHasanat resums a date's totals from every session remaining on
// that date. Aggregates are always recomputed from the full remaining set
// rather than incrementally adjusted, so edits and deletes cannot drift the
// totals.
func ComputeDailyHasanat(table *quran.LetterCounts, sessions []SessionRange) (HasanatTotal, int) {
	var total HasanatTotal
	for _, s := range sessions {
		t := ComputeHasanatForRange(table, s.Surah, s.AyatStart, s.AyatEnd)
		total.Letters += t.Letters
		total.Hasanat += t.Hasanat
	}
	return total, len(sessions)
}
