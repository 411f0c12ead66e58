package quran

import "testing"

func TestCorpusTotals(t *testing.T) {
	sum := 0
	for surah := 1; surah <= SurahCount; surah++ {
		n := AyatCount(surah)
		if n <= 0 {
			t.Fatalf("surah %d has non-positive ayat count %d", surah, n)
		}
		sum += n
	}
	if sum != TotalAyat {
		t.Fatalf("verse counts sum to %d, want %d", sum, TotalAyat)
	}
}

func TestAyatCountBounds(t *testing.T) {
	if AyatCount(0) != 0 || AyatCount(115) != 0 || AyatCount(-3) != 0 {
		t.Error("out-of-range surah numbers should report 0 ayat")
	}
	if AyatCount(1) != 7 {
		t.Errorf("Al-Fatihah ayat count = %d, want 7", AyatCount(1))
	}
	if AyatCount(2) != 286 {
		t.Errorf("Al-Baqarah ayat count = %d, want 286", AyatCount(2))
	}
	if AyatCount(114) != 6 {
		t.Errorf("An-Nas ayat count = %d, want 6", AyatCount(114))
	}
}

func TestValidPosition(t *testing.T) {
	cases := []struct {
		surah, ayat int
		want        bool
	}{
		{1, 1, true}, {1, 7, true}, {1, 8, false}, {1, 0, false},
		{114, 6, true}, {114, 7, false}, {0, 1, false}, {115, 1, false},
	}
	for _, c := range cases {
		if got := ValidPosition(c.surah, c.ayat); got != c.want {
			t.Errorf("ValidPosition(%d,%d) = %v, want %v", c.surah, c.ayat, got, c.want)
		}
	}
}

func TestNextPosition(t *testing.T) {
	next, wrapped := NextPosition(1, 3)
	if next != (Position{Surah: 1, Ayat: 4}) || wrapped {
		t.Errorf("NextPosition(1,3) = %v wrapped=%v", next, wrapped)
	}

	// End of a surah rolls into the next one.
	next, wrapped = NextPosition(1, 7)
	if next != (Position{Surah: 2, Ayat: 1}) || wrapped {
		t.Errorf("NextPosition(1,7) = %v wrapped=%v", next, wrapped)
	}

	// End of the corpus wraps to (1,1) and signals a khatam.
	next, wrapped = NextPosition(114, 6)
	if next != (Position{Surah: 1, Ayat: 1}) || !wrapped {
		t.Errorf("NextPosition(114,6) = %v wrapped=%v, want (1,1) wrapped", next, wrapped)
	}
}

func TestWalkWholeCorpus(t *testing.T) {
	pos := Position{Surah: 1, Ayat: 1}
	for i := 0; i < TotalAyat-1; i++ {
		var wrapped bool
		pos, wrapped = NextPosition(pos.Surah, pos.Ayat)
		if wrapped {
			t.Fatalf("unexpected wrap after %d steps at %v", i+1, pos)
		}
	}
	if pos != (Position{Surah: 114, Ayat: 6}) {
		t.Fatalf("after %d steps cursor = %v, want (114,6)", TotalAyat-1, pos)
	}
	next, wrapped := NextPosition(pos.Surah, pos.Ayat)
	if !wrapped || next != (Position{Surah: 1, Ayat: 1}) {
		t.Fatalf("final step = %v wrapped=%v, want (1,1) wrapped", next, wrapped)
	}
}
