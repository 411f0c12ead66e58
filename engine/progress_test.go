package engine

import (
	"testing"

	"github.com/miqra/miqra-server/quran"
)

func TestAdvanceWithinSurah(t *testing.T) {
	p := NewProgress()
	// Al-Fatihah has 7 verses; reading 1-7 moves the cursor to (2, 1).
	p = p.Advance(1, 1, 7)
	if p.CurrentSurah != 2 || p.CurrentAyat != 1 {
		t.Fatalf("cursor = (%d,%d), want (2,1)", p.CurrentSurah, p.CurrentAyat)
	}
	if p.TotalAyatRead != 7 {
		t.Fatalf("total = %d, want 7", p.TotalAyatRead)
	}
	if p.KhatamCount != 0 {
		t.Fatalf("khatam = %d, want 0", p.KhatamCount)
	}
}

func TestAdvanceMidSurah(t *testing.T) {
	p := NewProgress()
	p = p.Advance(2, 1, 10)
	if p.CurrentSurah != 2 || p.CurrentAyat != 11 {
		t.Fatalf("cursor = (%d,%d), want (2,11)", p.CurrentSurah, p.CurrentAyat)
	}
}

func TestAdvanceBehindCursorDoesNotRegress(t *testing.T) {
	p := Progress{CurrentSurah: 3, CurrentAyat: 50, TotalAyatRead: 500}
	p = p.Advance(1, 1, 7)
	if p.CurrentSurah != 3 || p.CurrentAyat != 50 {
		t.Fatalf("cursor moved to (%d,%d); re-reads must not regress the bookmark", p.CurrentSurah, p.CurrentAyat)
	}
	if p.TotalAyatRead != 507 {
		t.Fatalf("total = %d, want 507 (re-reads still count)", p.TotalAyatRead)
	}
	if p.KhatamCount != 0 {
		t.Fatalf("khatam = %d, want 0", p.KhatamCount)
	}
}

func TestAdvanceSameSurahBehindCursor(t *testing.T) {
	p := Progress{CurrentSurah: 2, CurrentAyat: 100, TotalAyatRead: 106}
	// Ends before the cursor within the same surah: no move.
	p = p.Advance(2, 1, 50)
	if p.CurrentSurah != 2 || p.CurrentAyat != 100 {
		t.Fatalf("cursor = (%d,%d), want (2,100)", p.CurrentSurah, p.CurrentAyat)
	}
	// Ends at the cursor: counts as forward.
	p = p.Advance(2, 90, 100)
	if p.CurrentSurah != 2 || p.CurrentAyat != 101 {
		t.Fatalf("cursor = (%d,%d), want (2,101)", p.CurrentSurah, p.CurrentAyat)
	}
}

func TestAdvanceKhatamWrap(t *testing.T) {
	last := quran.AyatCount(114)
	p := Progress{CurrentSurah: 114, CurrentAyat: 1, TotalAyatRead: 6230}
	p = p.Advance(114, 1, last)
	if p.CurrentSurah != 1 || p.CurrentAyat != 1 {
		t.Fatalf("cursor = (%d,%d), want (1,1) after wrap", p.CurrentSurah, p.CurrentAyat)
	}
	if p.KhatamCount != 1 {
		t.Fatalf("khatam = %d, want 1", p.KhatamCount)
	}
	if p.TotalAyatRead != 6230+last {
		t.Fatalf("total = %d, want %d (lifetime counter is never reset)", p.TotalAyatRead, 6230+last)
	}
}

func TestAdvanceTotalMonotonic(t *testing.T) {
	p := NewProgress()
	prev := 0
	sessions := []struct{ surah, start, end int }{
		{1, 1, 7}, {2, 1, 20}, {1, 1, 7}, {2, 10, 30}, {114, 1, 6},
	}
	for _, s := range sessions {
		p = p.Advance(s.surah, s.start, s.end)
		if p.TotalAyatRead < prev {
			t.Fatalf("total decreased: %d -> %d", prev, p.TotalAyatRead)
		}
		prev = p.TotalAyatRead
	}
}

func TestLapPercentage(t *testing.T) {
	if got := LapPercentage(0); got != 0 {
		t.Errorf("LapPercentage(0) = %v, want 0", got)
	}
	if got := LapPercentage(3118); got != 50.0 {
		t.Errorf("LapPercentage(3118) = %v, want 50", got)
	}
	// A completed lap rolls back to 0% of the next lap.
	if got := LapPercentage(quran.TotalAyat); got != 0 {
		t.Errorf("LapPercentage(6236) = %v, want 0", got)
	}
	if got := LapAyatRead(quran.TotalAyat + 100); got != 100 {
		t.Errorf("LapAyatRead = %d, want 100", got)
	}
	if got := LapRemaining(quran.TotalAyat + 100); got != quran.TotalAyat-100 {
		t.Errorf("LapRemaining = %d, want %d", got, quran.TotalAyat-100)
	}
}
