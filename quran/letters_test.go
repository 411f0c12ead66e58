package quran

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLetterCountsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter-counts.json")
	content := `{"data": {"1:1": 19, "1:2": 17, "2:1": 3}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lc, err := LoadLetterCountsFile(path)
	if err != nil {
		t.Fatalf("LoadLetterCountsFile: %v", err)
	}
	if lc.Size() != 3 {
		t.Errorf("size = %d, want 3", lc.Size())
	}
	if lc.Lookup(1, 1) != 19 || lc.Lookup(1, 2) != 17 || lc.Lookup(2, 1) != 3 {
		t.Error("lookup returned wrong counts")
	}
	if lc.Lookup(3, 1) != 0 {
		t.Error("unknown ayat should look up as 0")
	}
	if lc.TotalLetters() != 39 {
		t.Errorf("total letters = %d, want 39", lc.TotalLetters())
	}
}

func TestLoadLetterCountsFileRejectsBadKeys(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"malformed-key.json": `{"data": {"1": 19}}`,
		"bad-surah.json":     `{"data": {"x:1": 19}}`,
		"out-of-range.json":  `{"data": {"1:999": 19}}`,
		"not-json.json":      `{`,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := LoadLetterCountsFile(path); err == nil {
			t.Errorf("%s: expected load error", name)
		}
	}
}

func TestLoadLetterCountsFileMissing(t *testing.T) {
	if _, err := LoadLetterCountsFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file should error")
	}
}
