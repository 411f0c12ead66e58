package engine

import (
	"testing"

	"github.com/miqra/miqra-server/quran"
)

func fixtureLetterCounts(t *testing.T) *quran.LetterCounts {
	t.Helper()
	lc, err := quran.NewLetterCounts(map[quran.Position]int{
		{Surah: 1, Ayat: 1}: 19,
		{Surah: 1, Ayat: 2}: 17,
		{Surah: 1, Ayat: 3}: 12,
		{Surah: 1, Ayat: 4}: 11,
		{Surah: 2, Ayat: 1}: 3,
	})
	if err != nil {
		t.Fatalf("NewLetterCounts: %v", err)
	}
	return lc
}

func TestComputeHasanatForRange(t *testing.T) {
	lc := fixtureLetterCounts(t)
	got := ComputeHasanatForRange(lc, 1, 1, 3)
	if got.Letters != 48 {
		t.Errorf("letters = %d, want 48", got.Letters)
	}
	if got.Hasanat != 480 {
		t.Errorf("hasanat = %d, want 480", got.Hasanat)
	}
}

func TestComputeHasanatSingleAyat(t *testing.T) {
	lc := fixtureLetterCounts(t)
	got := ComputeHasanatForRange(lc, 2, 1, 1)
	if got.Letters != 3 || got.Hasanat != 30 {
		t.Fatalf("got %+v, want letters=3 hasanat=30", got)
	}
}

func TestComputeHasanatUnknownAyatCountsZero(t *testing.T) {
	lc := fixtureLetterCounts(t)
	// Ayat 5-7 of surah 1 are not in the fixture table.
	got := ComputeHasanatForRange(lc, 1, 1, 7)
	if got.Letters != 59 {
		t.Fatalf("letters = %d, want 59 (missing entries count as zero)", got.Letters)
	}
}

func TestComputeDailyHasanatResums(t *testing.T) {
	lc := fixtureLetterCounts(t)
	sessions := []SessionRange{
		{Surah: 1, AyatStart: 1, AyatEnd: 2},
		{Surah: 1, AyatStart: 3, AyatEnd: 4},
	}
	total, count := ComputeDailyHasanat(lc, sessions)
	if count != 2 {
		t.Errorf("session count = %d, want 2", count)
	}
	if total.Letters != 59 || total.Hasanat != 590 {
		t.Errorf("totals = %+v, want letters=59 hasanat=590", total)
	}

	// Deleting a session means resumming what remains, not decrementing.
	total, count = ComputeDailyHasanat(lc, sessions[:1])
	if count != 1 || total.Letters != 36 || total.Hasanat != 360 {
		t.Errorf("after delete: count=%d totals=%+v, want 1 / letters=36 hasanat=360", count, total)
	}

	total, count = ComputeDailyHasanat(lc, nil)
	if count != 0 || total.Letters != 0 || total.Hasanat != 0 {
		t.Errorf("empty day: count=%d totals=%+v, want zeros", count, total)
	}
}

func TestNewLetterCountsRejectsBadEntries(t *testing.T) {
	if _, err := quran.NewLetterCounts(map[quran.Position]int{{Surah: 1, Ayat: 99}: 5}); err == nil {
		t.Error("out-of-corpus position should be rejected")
	}
	if _, err := quran.NewLetterCounts(map[quran.Position]int{{Surah: 1, Ayat: 1}: -1}); err == nil {
		t.Error("negative letter count should be rejected")
	}
}
