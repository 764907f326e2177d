package resolver

import (
	"github.com/at-ishikawa/bibleclock/internal/clock"
)

// SlotsPerDial is the number of (hour, minute) slots on a 12 hour dial.
const SlotsPerDial = 12 * 60

type HourCoverage struct {
	Hour     int
	Exact    int
	Fallback int
}

// Coverage counts how many slots resolve without relaxing the lookup.
type Coverage struct {
	Total int
	// Exact counts slots with at least one book holding chapter:verse.
	Exact int
	// Summaries counts minute 0 slots, which always offer book summaries.
	Summaries int
	// Uncovered lists slots that need the fallback chain and have no summaries.
	Uncovered []clock.Slot
	PerHour   []HourCoverage
}

// Combined counts slots answered by an exact verse or by book summaries.
func (c Coverage) Combined() int {
	return c.Total - len(c.Uncovered)
}

func (c Coverage) ExactPercent() float64 {
	return percent(c.Exact, c.Total)
}

func (c Coverage) CombinedPercent() float64 {
	return percent(c.Combined(), c.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// MeasureCoverage resolves every slot of the dial against the index.
func MeasureCoverage(index Index) Coverage {
	r := &Resolver{index: index, order: VerseFirst}
	coverage := Coverage{Total: SlotsPerDial}
	for hour := 1; hour <= 12; hour++ {
		hc := HourCoverage{Hour: hour}
		for minute := 0; minute < 60; minute++ {
			res := r.ResolveClock(hour, minute)
			if minute == 0 {
				coverage.Summaries++
			}
			if res.Exact {
				hc.Exact++
				continue
			}
			hc.Fallback++
			if minute != 0 {
				coverage.Uncovered = append(coverage.Uncovered, res.Slot)
			}
		}
		coverage.Exact += hc.Exact
		coverage.PerHour = append(coverage.PerHour, hc)
	}
	return coverage
}
