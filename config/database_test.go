package config

import (
	"strings"
	"testing"
	"time"
)

func TestBuildDSNPinsUTC(t *testing.T) {
	dsn := buildDSN(AppConfig{
		DBUser:     "miqra",
		DBPassword: "secret",
		DBHost:     "127.0.0.1",
		DBPort:     "3306",
		DBName:     "miqra",
	})

	if !strings.Contains(dsn, "loc=UTC") {
		t.Errorf("dsn %q does not pin loc=UTC", dsn)
	}
	if strings.Contains(dsn, "loc=Local") {
		t.Errorf("dsn %q uses the host timezone", dsn)
	}
	if !strings.Contains(dsn, "parseTime=True") {
		t.Errorf("dsn %q does not enable parseTime", dsn)
	}
}

func TestBuildDSNPrefersURI(t *testing.T) {
	uri := "user:pw@tcp(db:3306)/miqra?parseTime=True&loc=UTC"
	if got := buildDSN(AppConfig{DatabaseURI: uri}); got != uri {
		t.Errorf("buildDSN = %q, want the configured URI", got)
	}
}

// A calendar date stored as a UTC-midnight time.Time must render as the same
// calendar day once the driver converts it to the DSN location. Under
// loc=UTC the conversion is the identity; loc=Local would shift it back a
// day on hosts west of UTC.
func TestUTCMidnightSurvivesDriverConversion(t *testing.T) {
	utcMidnight := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := utcMidnight.In(time.UTC).Format("2006-01-02"); got != "2025-06-10" {
		t.Errorf("stored date = %s, want 2025-06-10", got)
	}
}
