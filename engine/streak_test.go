package engine

import "testing"

func dates(t *testing.T, ss ...string) []Date {
	t.Helper()
	out := make([]Date, 0, len(ss))
	for _, s := range ss {
		out = append(out, mustDate(t, s))
	}
	return out
}

func TestComputeStreakEmpty(t *testing.T) {
	got := ComputeStreak(nil, mustDate(t, "2025-06-10"))
	if got.Current != 0 || got.Longest != 0 || got.LastDate != nil {
		t.Fatalf("empty input: got %+v, want zero state", got)
	}
}

func TestComputeStreakSingleCheckInToday(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	got := ComputeStreak(dates(t, "2025-06-10"), today)
	if got.Current != 1 || got.Longest != 1 {
		t.Fatalf("single check-in today: got current=%d longest=%d, want 1/1", got.Current, got.Longest)
	}
	if got.LastDate == nil || got.LastDate.String() != "2025-06-10" {
		t.Fatalf("last date = %v, want 2025-06-10", got.LastDate)
	}
}

func TestComputeStreakConsecutiveRun(t *testing.T) {
	// Scenario: check-ins on D, D+1, D+2 with today = D+2.
	today := mustDate(t, "2025-06-12")
	got := ComputeStreak(dates(t, "2025-06-10", "2025-06-11", "2025-06-12"), today)
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("got current=%d longest=%d, want 3/3", got.Current, got.Longest)
	}
	if got.LastDate.String() != "2025-06-12" {
		t.Fatalf("last date = %s, want 2025-06-12", got.LastDate)
	}
}

func TestComputeStreakGapBreaksRun(t *testing.T) {
	// Scenario: D and D+2; the missed day breaks the run, no grace day.
	today := mustDate(t, "2025-06-12")
	got := ComputeStreak(dates(t, "2025-06-10", "2025-06-12"), today)
	if got.Current != 1 {
		t.Errorf("current = %d, want 1 (fresh run after gap)", got.Current)
	}
	if got.Longest != 1 {
		t.Errorf("longest = %d, want 1 (both runs have length 1)", got.Longest)
	}
}

func TestComputeStreakLongestSurvivesLaterShortRun(t *testing.T) {
	// Check-ins on D, D+1, D+3, D+4, D+5: the later run of 3 is the longest.
	today := mustDate(t, "2025-06-15")
	got := ComputeStreak(dates(t,
		"2025-06-10", "2025-06-11", "2025-06-13", "2025-06-14", "2025-06-15"), today)
	if got.Longest != 3 {
		t.Errorf("longest = %d, want 3", got.Longest)
	}
	if got.Current != 3 {
		t.Errorf("current = %d, want 3 (run ends today)", got.Current)
	}

	// Earlier run longer than the final one.
	got = ComputeStreak(dates(t,
		"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04", "2025-06-14", "2025-06-15"), today)
	if got.Longest != 4 {
		t.Errorf("longest = %d, want 4 (earlier run)", got.Longest)
	}
	if got.Current != 2 {
		t.Errorf("current = %d, want 2", got.Current)
	}
}

func TestComputeStreakDecay(t *testing.T) {
	run := dates(t, "2025-06-08", "2025-06-09", "2025-06-10")

	// Last check-in yesterday: still active.
	got := ComputeStreak(run, mustDate(t, "2025-06-11"))
	if got.Current != 3 {
		t.Errorf("yesterday: current = %d, want 3", got.Current)
	}

	// Two days since last check-in: displayed streak decays to zero, but
	// longest and last date are untouched.
	got = ComputeStreak(run, mustDate(t, "2025-06-12"))
	if got.Current != 0 {
		t.Errorf("after gap: current = %d, want 0", got.Current)
	}
	if got.Longest != 3 {
		t.Errorf("after gap: longest = %d, want 3", got.Longest)
	}
	if got.LastDate == nil || got.LastDate.String() != "2025-06-10" {
		t.Errorf("after gap: last date = %v, want 2025-06-10", got.LastDate)
	}
}

func TestComputeStreakDeduplicatesAndSorts(t *testing.T) {
	today := mustDate(t, "2025-06-12")
	// Unordered input with duplicates must not inflate runs.
	got := ComputeStreak(dates(t,
		"2025-06-12", "2025-06-10", "2025-06-11", "2025-06-11", "2025-06-10"), today)
	if got.Current != 3 || got.Longest != 3 {
		t.Fatalf("got current=%d longest=%d, want 3/3", got.Current, got.Longest)
	}
}

func TestComputeStreakLongestNeverBelowCurrent(t *testing.T) {
	today := mustDate(t, "2025-06-30")
	sets := [][]Date{
		dates(t, "2025-06-30"),
		dates(t, "2025-06-28", "2025-06-29", "2025-06-30"),
		dates(t, "2025-06-01", "2025-06-29", "2025-06-30"),
		dates(t, "2025-06-01", "2025-06-02", "2025-06-20"),
	}
	for i, set := range sets {
		got := ComputeStreak(set, today)
		if got.Longest < got.Current {
			t.Errorf("set %d: longest %d < current %d", i, got.Longest, got.Current)
		}
	}
}

func TestStreakStateActive(t *testing.T) {
	last := mustDate(t, "2025-06-10")
	s := StreakState{Current: 2, Longest: 2, LastDate: &last}
	if !s.Active(mustDate(t, "2025-06-10")) || !s.Active(mustDate(t, "2025-06-11")) {
		t.Error("streak should be active today and the day after")
	}
	if s.Active(mustDate(t, "2025-06-12")) {
		t.Error("streak should be inactive after a missed day")
	}
	if (StreakState{}).Active(mustDate(t, "2025-06-12")) {
		t.Error("empty state is never active")
	}
}

func TestStreakStateEqualState(t *testing.T) {
	a := mustDate(t, "2025-06-10")
	b := mustDate(t, "2025-06-11")
	s1 := StreakState{Current: 2, Longest: 5, LastDate: &a}
	s2 := StreakState{Current: 2, Longest: 5, LastDate: &a}
	if !s1.EqualState(s2) {
		t.Error("identical states should compare equal")
	}
	s2.LastDate = &b
	if s1.EqualState(s2) {
		t.Error("different last dates should not compare equal")
	}
	if s1.EqualState(StreakState{Current: 2, Longest: 5}) {
		t.Error("nil vs set last date should not compare equal")
	}
}
