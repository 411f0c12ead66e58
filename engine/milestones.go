package engine

import (
	"math"
	"time"

	"github.com/miqra/miqra-server/quran"
)

// Milestone is one badge on the current khatam lap.
type Milestone struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	TargetAyat int    `json:"target_ayat"`
	Percentage int    `json:"percentage"`
	Achieved   bool   `json:"achieved"`
}

var milestoneDefs = []struct {
	id       string
	label    string
	fraction float64
}{
	{"start", "Memulai Perjalanan", 0},
	{"p5", "5% Pertama", 0.05},
	{"p10", "10% Khatam", 0.10},
	{"p25", "Seperempat Jalan", 0.25},
	{"p50", "Setengah Perjalanan", 0.50},
	{"p75", "Tiga Perempat", 0.75},
	{"p90", "Hampir Selesai", 0.90},
	{"khatam", "Khatam!", 1},
}

// Milestones reports the badge list for the current lap of the lifetime
// counter.
func Milestones(totalAyatRead int) []Milestone {
	lap := LapAyatRead(totalAyatRead)
	out := make([]Milestone, 0, len(milestoneDefs))
	for _, def := range milestoneDefs {
		target := int(math.Round(float64(quran.TotalAyat) * def.fraction))
		if def.fraction == 0 {
			target = 1
		}
		out = append(out, Milestone{
			ID:         def.id,
			Label:      def.label,
			TargetAyat: target,
			Percentage: int(def.fraction * 100),
			Achieved:   lap >= target,
		})
	}
	return out
}

// NextMilestone returns the first unachieved milestone, or nil once the lap
// is complete.
func NextMilestone(totalAyatRead int) *Milestone {
	for _, m := range Milestones(totalAyatRead) {
		if !m.Achieved {
			ms := m
			return &ms
		}
	}
	return nil
}

// DailyTotal is one day's check-in total, the input to pace estimation.
type DailyTotal struct {
	Date      Date
	AyatCount int
}

// CompletionEstimate projects when the current lap will finish based on
// recent reading pace.
type CompletionEstimate struct {
	AvgPerDay     int        `json:"avg_per_day"`
	DaysRemaining int        `json:"days_remaining"`
	EstimatedDate *time.Time `json:"estimated_date"`
}

// EstimateCompletion averages recent totals over distinct active days and
// projects the remaining lap at that pace. With no data or a zero pace the
// estimate is empty rather than infinite.
func EstimateCompletion(totalAyatRead int, recent []DailyTotal, today Date) CompletionEstimate {
	if len(recent) == 0 {
		return CompletionEstimate{}
	}

	totalRecent := 0
	days := make(map[Date]struct{}, len(recent))
	for _, r := range recent {
		totalRecent += r.AyatCount
		days[r.Date] = struct{}{}
	}
	if len(days) == 0 {
		return CompletionEstimate{}
	}
	avg := int(math.Round(float64(totalRecent) / float64(len(days))))
	if avg <= 0 {
		return CompletionEstimate{}
	}

	remaining := LapRemaining(totalAyatRead)
	daysRemaining := int(math.Ceil(float64(remaining) / float64(avg)))
	estimated := today.AddDays(daysRemaining).Time()
	return CompletionEstimate{
		AvgPerDay:     avg,
		DaysRemaining: daysRemaining,
		EstimatedDate: &estimated,
	}
}
