package quran

// Static reference data for the Qur'anic text in the Hafs/Kufan verse
// numbering: 114 surahs, 6236 ayat in total. The engine treats this table as
// an immutable constant; nothing in the application ever mutates it.

const (
	// SurahCount is the number of surahs in the corpus.
	SurahCount = 114
	// TotalAyat is the number of verses in one complete reading (khatam).
	TotalAyat = 6236
)

// ayatCounts[n-1] is the number of ayat in surah n.
var ayatCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109,
	123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60,
	34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45,
	60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44,
	28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20,
	15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3,
	5, 4, 5, 6,
}

// Position identifies a single ayat as a (surah, ayat) pair.
type Position struct {
	Surah int `json:"surah"`
	Ayat  int `json:"ayat"`
}

// ValidSurah reports whether n is a valid surah number.
func ValidSurah(n int) bool {
	return n >= 1 && n <= SurahCount
}

// AyatCount returns the number of ayat in the given surah, or 0 when the
// surah number is out of range.
func AyatCount(surah int) int {
	if !ValidSurah(surah) {
		return 0
	}
	return ayatCounts[surah-1]
}

// ValidPosition reports whether the (surah, ayat) pair exists in the corpus.
func ValidPosition(surah, ayat int) bool {
	return ValidSurah(surah) && ayat >= 1 && ayat <= ayatCounts[surah-1]
}

// NextPosition returns the position immediately after (surah, ayat) in
// reading order. Crossing the end of surah 114 wraps back to (1, 1) and
// reports wrapped=true; that wrap is what the application counts as one
// completed khatam.
func NextPosition(surah, ayat int) (next Position, wrapped bool) {
	if !ValidSurah(surah) {
		return Position{Surah: 1, Ayat: 1}, false
	}
	if ayat < ayatCounts[surah-1] {
		return Position{Surah: surah, Ayat: ayat + 1}, false
	}
	if surah == SurahCount {
		return Position{Surah: 1, Ayat: 1}, true
	}
	return Position{Surah: surah + 1, Ayat: 1}, false
}
