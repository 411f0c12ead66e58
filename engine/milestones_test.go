package engine

import (
	"testing"

	"github.com/miqra/miqra-server/quran"
)

func TestMilestonesThresholds(t *testing.T) {
	ms := Milestones(0)
	for _, m := range ms {
		if m.Achieved {
			t.Errorf("milestone %s achieved at 0 ayat", m.ID)
		}
	}

	ms = Milestones(quran.TotalAyat / 2)
	byID := map[string]Milestone{}
	for _, m := range ms {
		byID[m.ID] = m
	}
	if !byID["p25"].Achieved {
		t.Error("p25 should be achieved at half a lap")
	}
	if byID["p75"].Achieved {
		t.Error("p75 should not be achieved at half a lap")
	}
}

func TestNextMilestone(t *testing.T) {
	next := NextMilestone(0)
	if next == nil || next.ID != "start" {
		t.Fatalf("next milestone at 0 = %v, want start", next)
	}
	next = NextMilestone(1)
	if next == nil || next.ID != "p5" {
		t.Fatalf("next milestone at 1 = %v, want p5", next)
	}
}

func TestMilestonesResetEachLap(t *testing.T) {
	// One full lap plus one verse is back near the start of the next lap.
	ms := Milestones(quran.TotalAyat + 1)
	for _, m := range ms {
		if m.ID != "start" && m.Achieved {
			t.Errorf("milestone %s should reset on a new lap", m.ID)
		}
	}
}

func TestEstimateCompletion(t *testing.T) {
	today := mustDate(t, "2025-06-10")

	if got := EstimateCompletion(100, nil, today); got.AvgPerDay != 0 || got.EstimatedDate != nil {
		t.Fatalf("no data: got %+v, want empty estimate", got)
	}

	recent := []DailyTotal{
		{Date: mustDate(t, "2025-06-08"), AyatCount: 20},
		{Date: mustDate(t, "2025-06-09"), AyatCount: 40},
	}
	got := EstimateCompletion(quran.TotalAyat-60, recent, today)
	if got.AvgPerDay != 30 {
		t.Errorf("avg = %d, want 30", got.AvgPerDay)
	}
	if got.DaysRemaining != 2 {
		t.Errorf("days remaining = %d, want 2", got.DaysRemaining)
	}
	if got.EstimatedDate == nil || DateOf(*got.EstimatedDate).String() != "2025-06-12" {
		t.Errorf("estimated date = %v, want 2025-06-12", got.EstimatedDate)
	}
}

func TestEstimateCompletionZeroPace(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	recent := []DailyTotal{{Date: mustDate(t, "2025-06-09"), AyatCount: 0}}
	if got := EstimateCompletion(100, recent, today); got.EstimatedDate != nil {
		t.Fatalf("zero pace should yield empty estimate, got %+v", got)
	}
}
