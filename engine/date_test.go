package engine

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestParseDateRoundTrip(t *testing.T) {
	d := mustDate(t, "2025-03-09")
	if got := d.String(); got != "2025-03-09" {
		t.Fatalf("String() = %q, want 2025-03-09", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2025/03/09", "09-03-2025", "2025-13-01", "not-a-date"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestDayDifference(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2025-01-02", "2025-01-01", 1},
		{"2025-01-01", "2025-01-02", -1},
		{"2025-01-01", "2025-01-01", 0},
		{"2025-03-01", "2025-02-28", 1},  // non-leap February
		{"2024-03-01", "2024-02-29", 1},  // leap February
		{"2026-01-01", "2025-12-31", 1},  // year boundary
		{"2025-11-03", "2025-11-01", 2},  // across a US DST fall-back date
		{"2025-03-10", "2025-03-08", 2},  // across a US DST spring-forward date
		{"2025-12-31", "2025-01-01", 364},
	}
	for _, c := range cases {
		got := DayDifference(mustDate(t, c.a), mustDate(t, c.b))
		if got != c.want {
			t.Errorf("DayDifference(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestIsConsecutive(t *testing.T) {
	if !IsConsecutive(mustDate(t, "2025-06-02"), mustDate(t, "2025-06-01")) {
		t.Error("adjacent days should be consecutive")
	}
	if IsConsecutive(mustDate(t, "2025-06-03"), mustDate(t, "2025-06-01")) {
		t.Error("a one-day gap is not consecutive")
	}
	if IsConsecutive(mustDate(t, "2025-06-01"), mustDate(t, "2025-06-02")) {
		t.Error("reversed order is not consecutive")
	}
	if IsConsecutive(mustDate(t, "2025-06-01"), mustDate(t, "2025-06-01")) {
		t.Error("the same day is not consecutive with itself")
	}
}

func TestDateInResolvesPerTimezone(t *testing.T) {
	// 2025-06-01 18:00 UTC is already 2025-06-02 in Jakarta (UTC+7) but
	// still 2025-06-01 in New York (UTC-4 in June).
	instant := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	if got := DateOf(instant.In(jakarta)).String(); got != "2025-06-02" {
		t.Errorf("Jakarta date = %s, want 2025-06-02", got)
	}
	if got := DateOf(instant.In(newYork)).String(); got != "2025-06-01" {
		t.Errorf("New York date = %s, want 2025-06-01", got)
	}
}

func TestTodayRejectsInvalidTimezone(t *testing.T) {
	if _, err := Today("Not/AZone"); err == nil {
		t.Fatal("Today with an invalid timezone should fail")
	}
}

func TestAddDays(t *testing.T) {
	d := mustDate(t, "2025-02-27")
	if got := d.AddDays(2).String(); got != "2025-03-01" {
		t.Errorf("AddDays(2) = %s, want 2025-03-01", got)
	}
	if got := d.AddDays(-27).String(); got != "2025-01-31" {
		t.Errorf("AddDays(-27) = %s, want 2025-01-31", got)
	}
}
