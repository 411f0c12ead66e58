package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/miqra/miqra-server/models"
	"github.com/miqra/miqra-server/quran"
	"github.com/miqra/miqra-server/utils"
)

// LoadLetterTable returns the per-ayah letter counts, seeding the database
// from the JSON file at seedPath on first boot. The table is reference
// data: written once, then read into memory at every start.
func LoadLetterTable(db *gorm.DB, seedPath string) (*quran.LetterCounts, error) {
	var rows []models.LetterCount
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load letter counts: %w", err)
	}

	if len(rows) == 0 {
		lc, err := quran.LoadLetterCountsFile(seedPath)
		if err != nil {
			return nil, fmt.Errorf("letter_counts table is empty and seed file could not be read (set LETTER_COUNTS_PATH or place the file at %s): %w", seedPath, err)
		}

		entries := lc.Entries()
		rows = make([]models.LetterCount, 0, len(entries))
		for pos, letters := range entries {
			rows = append(rows, models.LetterCount{
				Surah:   pos.Surah,
				Ayat:    pos.Ayat,
				Letters: letters,
			})
		}
		if err := db.CreateInBatches(rows, 500).Error; err != nil {
			return nil, fmt.Errorf("seed letter counts: %w", err)
		}
		utils.Sugar.Infow("seeded letter counts", "entries", len(rows), "source", seedPath)
		return lc, nil
	}

	entries := make(map[quran.Position]int, len(rows))
	for _, row := range rows {
		entries[quran.Position{Surah: row.Surah, Ayat: row.Ayat}] = row.Letters
	}
	lc, err := quran.NewLetterCounts(entries)
	if err != nil {
		return nil, fmt.Errorf("letter_counts table holds invalid data: %w", err)
	}
	return lc, nil
}
