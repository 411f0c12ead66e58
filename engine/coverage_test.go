package engine

import (
	"testing"

	"github.com/miqra/miqra-server/quran"
)

func TestCoverageRecordRangeIdempotent(t *testing.T) {
	c := NewCoverage()
	c.RecordRange(1, 1, 7)
	if c.Count() != 7 {
		t.Fatalf("count = %d, want 7", c.Count())
	}
	c.RecordRange(1, 1, 7)
	if c.Count() != 7 {
		t.Fatalf("count after re-record = %d, want 7 (idempotent)", c.Count())
	}
	c.RecordRange(1, 5, 7)
	if c.Count() != 7 {
		t.Fatalf("count after overlap = %d, want 7", c.Count())
	}
}

func TestCoverageIgnoresInvalidPositions(t *testing.T) {
	c := NewCoverage()
	c.RecordRange(1, 1, 20) // Al-Fatihah only has 7 verses
	if c.Count() != 7 {
		t.Fatalf("count = %d, want 7 (out-of-surah ayat skipped)", c.Count())
	}
	c.RecordRange(115, 1, 3)
	if c.Count() != 7 {
		t.Fatalf("count = %d, want 7 (invalid surah skipped)", c.Count())
	}
}

func TestCoveragePercentageAndRemaining(t *testing.T) {
	c := NewCoverage()
	if c.Percentage() != 0 || c.Remaining() != quran.TotalAyat {
		t.Fatalf("empty coverage: pct=%v remaining=%d", c.Percentage(), c.Remaining())
	}
	c.RecordRange(2, 1, quran.AyatCount(2))
	want := quran.TotalAyat - quran.AyatCount(2)
	if c.Remaining() != want {
		t.Fatalf("remaining = %d, want %d", c.Remaining(), want)
	}
}

func TestSurahCoverageMissingRanges(t *testing.T) {
	c := NewCoverage()
	c.RecordRange(1, 2, 3)
	c.RecordRange(1, 6, 6)

	sc := c.ForSurah(1)
	if sc.Read != 3 || sc.Total != 7 {
		t.Fatalf("read/total = %d/%d, want 3/7", sc.Read, sc.Total)
	}
	want := []AyatRange{{Start: 1, End: 1}, {Start: 4, End: 5}, {Start: 7, End: 7}}
	if len(sc.MissingRanges) != len(want) {
		t.Fatalf("missing ranges = %v, want %v", sc.MissingRanges, want)
	}
	for i := range want {
		if sc.MissingRanges[i] != want[i] {
			t.Errorf("missing range %d = %v, want %v", i, sc.MissingRanges[i], want[i])
		}
	}
}

func TestSurahCoverageComplete(t *testing.T) {
	c := NewCoverage()
	c.RecordRange(1, 1, 7)
	sc := c.ForSurah(1)
	if sc.Read != 7 || len(sc.MissingRanges) != 0 || sc.Percentage != 100 {
		t.Fatalf("complete surah: %+v", sc)
	}
}

func TestNextUnreadScansForward(t *testing.T) {
	c := NewCoverage()
	c.RecordRange(1, 1, 7)
	c.RecordRange(2, 1, 5)

	pos := c.NextUnread(1, 1)
	if pos.Surah != 2 || pos.Ayat != 6 {
		t.Fatalf("next unread = %v, want (2,6)", pos)
	}
	// Starting past the gap finds the next hole in place.
	pos = c.NextUnread(2, 6)
	if pos.Surah != 2 || pos.Ayat != 6 {
		t.Fatalf("next unread from hole = %v, want (2,6)", pos)
	}
}

func TestNextUnreadWrapsAroundCorpus(t *testing.T) {
	c := NewCoverage()
	// Cover the tail end of the corpus; scanning from inside it must wrap
	// to surah 1.
	c.RecordRange(114, 1, quran.AyatCount(114))
	pos := c.NextUnread(114, 1)
	if pos.Surah != 1 || pos.Ayat != 1 {
		t.Fatalf("next unread = %v, want wrap to (1,1)", pos)
	}
}

func TestNextUnreadFullCorpus(t *testing.T) {
	c := NewCoverage()
	for surah := 1; surah <= quran.SurahCount; surah++ {
		c.RecordRange(surah, 1, quran.AyatCount(surah))
	}
	if c.Count() != quran.TotalAyat {
		t.Fatalf("count = %d, want %d", c.Count(), quran.TotalAyat)
	}
	pos := c.NextUnread(37, 40)
	if pos.Surah != 1 || pos.Ayat != 1 {
		t.Fatalf("full corpus next unread = %v, want (1,1)", pos)
	}
	if c.Percentage() != 100 {
		t.Fatalf("full corpus percentage = %v, want 100", c.Percentage())
	}
}

func TestCoverageFromSessionsOrderIndependent(t *testing.T) {
	a := CoverageFromSessions([]SessionRange{
		{Surah: 1, AyatStart: 1, AyatEnd: 7},
		{Surah: 2, AyatStart: 5, AyatEnd: 20},
		{Surah: 1, AyatStart: 3, AyatEnd: 5},
	})
	b := CoverageFromSessions([]SessionRange{
		{Surah: 1, AyatStart: 3, AyatEnd: 5},
		{Surah: 2, AyatStart: 5, AyatEnd: 20},
		{Surah: 1, AyatStart: 1, AyatEnd: 7},
	})
	if a.Count() != b.Count() {
		t.Fatalf("order changed coverage: %d vs %d", a.Count(), b.Count())
	}
}
