package quran

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LetterCounts is the per-verse Arabic letter-count table used by the hasanat
// calculator. It is reference data loaded once at startup and read-only
// afterwards, so lookups are safe for concurrent use.
type LetterCounts struct {
	counts map[Position]int
	total  int
}

// NewLetterCounts builds a table from explicit entries. Entries outside the
// corpus are rejected so a corrupt seed cannot skew hasanat totals.
func NewLetterCounts(entries map[Position]int) (*LetterCounts, error) {
	lc := &LetterCounts{counts: make(map[Position]int, len(entries))}
	for pos, letters := range entries {
		if !ValidPosition(pos.Surah, pos.Ayat) {
			return nil, fmt.Errorf("letter counts: position %d:%d outside corpus", pos.Surah, pos.Ayat)
		}
		if letters < 0 {
			return nil, fmt.Errorf("letter counts: negative count for %d:%d", pos.Surah, pos.Ayat)
		}
		lc.counts[pos] = letters
		lc.total += letters
	}
	return lc, nil
}

// Lookup returns the letter count for one ayat; unknown positions count as 0.
func (lc *LetterCounts) Lookup(surah, ayat int) int {
	return lc.counts[Position{Surah: surah, Ayat: ayat}]
}

// Size returns the number of ayat present in the table.
func (lc *LetterCounts) Size() int {
	return len(lc.counts)
}

// TotalLetters returns the sum over the whole table.
func (lc *LetterCounts) TotalLetters() int {
	return lc.total
}

// Entries returns a copy of the underlying table, used when seeding the
// letter_counts database table from the JSON file.
func (lc *LetterCounts) Entries() map[Position]int {
	out := make(map[Position]int, len(lc.counts))
	for pos, letters := range lc.counts {
		out[pos] = letters
	}
	return out
}

// letterCountsFile mirrors the seed file layout: {"data": {"<surah>:<ayat>": letters}}.
type letterCountsFile struct {
	Data map[string]int `json:"data"`
}

// LoadLetterCountsFile reads a letter-count seed file.
func LoadLetterCountsFile(path string) (*LetterCounts, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read letter counts file: %w", err)
	}
	var file letterCountsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse letter counts file %s: %w", path, err)
	}
	entries := make(map[Position]int, len(file.Data))
	for key, letters := range file.Data {
		pos, err := parsePositionKey(key)
		if err != nil {
			return nil, fmt.Errorf("letter counts file %s: %w", path, err)
		}
		entries[pos] = letters
	}
	return NewLetterCounts(entries)
}

func parsePositionKey(key string) (Position, error) {
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("invalid position key %q", key)
	}
	surah, err := strconv.Atoi(parts[0])
	if err != nil {
		return Position{}, fmt.Errorf("invalid surah in key %q", key)
	}
	ayat, err := strconv.Atoi(parts[1])
	if err != nil {
		return Position{}, fmt.Errorf("invalid ayat in key %q", key)
	}
	return Position{Surah: surah, Ayat: ayat}, nil
}
