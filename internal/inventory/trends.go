package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// GroupSummary describes one liquor type (or beer category) in a session.
type GroupSummary struct {
	Group             string
	TotalServings     int
	AveragePercentage float64
	Items             int
}

// Summarize groups the items of a session by ItemGroup. Groups are sorted by name.
func Summarize[T Item[T]](session Session[T]) []GroupSummary {
	byGroup := make(map[string]*GroupSummary)
	percentSums := make(map[string]float64)
	for _, item := range session.Items {
		group := item.ItemGroup()
		summary, ok := byGroup[group]
		if !ok {
			summary = &GroupSummary{Group: group}
			byGroup[group] = summary
		}
		level := item.Gauge()
		summary.TotalServings += level.Servings
		summary.Items++
		percentSums[group] += level.Percentage
	}

	out := make([]GroupSummary, 0, len(byGroup))
	for group, summary := range byGroup {
		summary.AveragePercentage = percentSums[group] / float64(summary.Items)
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

// Trend is the whole-bar picture of one session.
type Trend struct {
	Date              time.Time
	TotalServings     int
	AveragePercentage float64
}

// Trends returns one point per session ordered by end date.
func Trends[T Item[T]](sessions []Session[T]) []Trend {
	sorted := SortedByEnd(sessions)
	out := make([]Trend, 0, len(sorted))
	for _, session := range sorted {
		trend := Trend{Date: session.EndDate}
		var percentSum float64
		for _, item := range session.Items {
			level := item.Gauge()
			trend.TotalServings += level.Servings
			percentSum += level.Percentage
		}
		if n := len(session.Items); n > 0 {
			trend.AveragePercentage = percentSum / float64(n)
		}
		out = append(out, trend)
	}
	return out
}

// GroupTotal is the remaining quantity of one group summed over a history.
type GroupTotal struct {
	Group    string
	Quantity decimal.Decimal
}

// GroupTotals sums item quantities per group across every session, sorted by group.
func GroupTotals[T Item[T]](sessions []Session[T]) []GroupTotal {
	sums := make(map[string]decimal.Decimal)
	for _, session := range sessions {
		for _, item := range session.Items {
			group := item.ItemGroup()
			sums[group] = sums[group].Add(item.Amount())
		}
	}

	out := make([]GroupTotal, 0, len(sums))
	for group, quantity := range sums {
		out = append(out, GroupTotal{Group: group, Quantity: quantity})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}
