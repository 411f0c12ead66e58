package engine

import "sort"

// StreakState is the derived streak summary for one user. It is a cache of a
// computation over the check-in date set, never a source of truth; whenever
// the stored copy disagrees with ComputeStreak over the same dates, the
// stored copy is the one that is wrong.
type StreakState struct {
	Current  int   `json:"current"`
	Longest  int   `json:"longest"`
	LastDate *Date `json:"last_date"`
}

// ComputeStreak derives streak state from a user's check-in dates. The input
// may arrive unordered and with duplicates; it is deduplicated and sorted
// before scanning.
//
// The scan tracks the length of each run of consecutive dates. Any gap of
// more than one day breaks the run; there is no grace day. The run ending at
// the most recent date is the raw current streak, and it decays to a
// displayed 0 when the most recent check-in is neither today nor yesterday.
// Decay never rewrites history: longest keeps the best run ever recorded.
func ComputeStreak(dates []Date, today Date) StreakState {
	uniq := dedupeDates(dates)
	if len(uniq) == 0 {
		return StreakState{}
	}

	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Before(uniq[j]) })

	longest := 1
	run := 1
	for i := 1; i < len(uniq); i++ {
		if IsConsecutive(uniq[i], uniq[i-1]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := uniq[len(uniq)-1]
	current := run
	if DayDifference(today, last) > 1 {
		current = 0
	}

	return StreakState{Current: current, Longest: longest, LastDate: &last}
}

// Active reports whether the streak is still alive relative to today, i.e.
// the last check-in was today or yesterday.
func (s StreakState) Active(today Date) bool {
	return s.LastDate != nil && DayDifference(today, *s.LastDate) <= 1
}

// EqualState compares two streak states field by field, treating nil and
// equal LastDate pointers alike. Used by the read-repair path to detect a
// stale persisted copy.
func (s StreakState) EqualState(other StreakState) bool {
	if s.Current != other.Current || s.Longest != other.Longest {
		return false
	}
	if (s.LastDate == nil) != (other.LastDate == nil) {
		return false
	}
	if s.LastDate != nil && !s.LastDate.Equal(*other.LastDate) {
		return false
	}
	return true
}

func dedupeDates(dates []Date) []Date {
	seen := make(map[Date]struct{}, len(dates))
	out := make([]Date, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
