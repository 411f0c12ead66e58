package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/miqra/miqra-server/engine"
)

func mustDate(t *testing.T, s string) engine.Date {
	t.Helper()
	d, err := engine.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestValidateRange(t *testing.T) {
	cases := []struct {
		surah, start, end int
		wantErr           bool
	}{
		{1, 1, 7, false},
		{114, 1, 6, false},
		{2, 255, 286, false},
		{0, 1, 1, true},
		{115, 1, 1, true},
		{1, 0, 5, true},
		{1, 5, 4, true},
		{1, 1, 8, true},
		{114, 1, 7, true},
	}
	for _, tc := range cases {
		err := validateRange(tc.surah, tc.start, tc.end)
		if tc.wantErr && err == nil {
			t.Errorf("validateRange(%d, %d, %d) = nil, want error", tc.surah, tc.start, tc.end)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("validateRange(%d, %d, %d) = %v, want nil", tc.surah, tc.start, tc.end, err)
		}
		if tc.wantErr && err != nil && !IsValidation(err) {
			t.Errorf("validateRange(%d, %d, %d) error is not a ValidationError: %v", tc.surah, tc.start, tc.end, err)
		}
	}
}

func TestResolveDate(t *testing.T) {
	today := mustDate(t, "2025-06-10")

	d, err := resolveDate("", today)
	if err != nil {
		t.Fatalf("resolveDate empty: %v", err)
	}
	if !d.Equal(today) {
		t.Errorf("empty date resolved to %s, want today %s", d, today)
	}

	d, err = resolveDate("2025-06-09", today)
	if err != nil {
		t.Fatalf("resolveDate backdated: %v", err)
	}
	if d.String() != "2025-06-09" {
		t.Errorf("backdated resolved to %s, want 2025-06-09", d)
	}

	if _, err = resolveDate("2025-06-11", today); err == nil {
		t.Fatal("future date accepted, want ValidationError")
	} else if !IsValidation(err) {
		t.Fatalf("future date error is not a ValidationError: %v", err)
	}

	if _, err = resolveDate("not-a-date", today); err == nil || !IsValidation(err) {
		t.Fatalf("malformed date error = %v, want ValidationError", err)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(validationErrorf("bad %d", 7)) {
		t.Error("validationErrorf result not recognized")
	}
	wrapped := fmt.Errorf("outer: %w", validationErrorf("inner"))
	if !IsValidation(wrapped) {
		t.Error("wrapped validation error not recognized")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain error misclassified as validation")
	}
	if IsValidation(ErrNotFound) {
		t.Error("ErrNotFound misclassified as validation")
	}
}

func TestMilestonesViewJSONShape(t *testing.T) {
	view := MilestonesView{
		Milestones: engine.Milestones(3118),
		Next:       engine.NextMilestone(3118),
	}
	b, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["milestones"]; !ok {
		t.Error("payload is missing the milestones key")
	}
	if _, ok := decoded["reached"]; ok {
		t.Error("payload still carries a reached key")
	}

	// The list carries every badge with its achieved flag, not just the
	// achieved subset.
	var ms []engine.Milestone
	if err := json.Unmarshal(decoded["milestones"], &ms); err != nil {
		t.Fatalf("unmarshal milestones: %v", err)
	}
	sawUnachieved := false
	for _, m := range ms {
		if !m.Achieved {
			sawUnachieved = true
		}
	}
	if !sawUnachieved {
		t.Error("half a lap in, some milestones should still be unachieved")
	}
}

func TestCacheKeyScoping(t *testing.T) {
	a := CacheKey(1, "streak")
	b := CacheKey(12, "streak")
	if a == b {
		t.Errorf("cache keys collide across users: %q", a)
	}
	if got := CacheKey(7, "coverage"); got != "user:7:coverage" {
		t.Errorf("CacheKey(7, coverage) = %q", got)
	}
}
