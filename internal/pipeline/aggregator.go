// Package pipeline turns the owner's clients, team members and time entries
// into per-client profitability and the monthly agency summary.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

// Aggregate reduces per-client figures into the monthly summary.
func Aggregate(profitabilities []model.ClientProfitability) model.MonthlySummary {
	var s model.MonthlySummary

	for _, p := range profitabilities {
		s.TotalRevenue += p.Revenue
		s.TotalSpent += p.Spent
		if p.IsAtRisk {
			s.AtRiskCount++
		}
	}

	s.TotalMargin = s.TotalRevenue - s.TotalSpent
	s.OverallMarginPercent = percentOf(s.TotalMargin, s.TotalRevenue)
	s.ClientCount = len(profitabilities)

	return s
}

// Report is everything the presentation layers need for one month.
type Report struct {
	Month           time.Time
	Today           time.Time
	Profitabilities []model.ClientProfitability
	Summary         model.MonthlySummary
}

// BuildReport computes profitability for every active client in ds, in the
// order the clients were loaded, and aggregates the result.
func BuildReport(ds Dataset, month, today time.Time) Report {
	clients := FilterActiveClients(ds.Clients)

	profs := make([]model.ClientProfitability, 0, len(clients))
	for _, c := range clients {
		profs = append(profs, ComputeProfitability(c, ds.Entries, ds.Members, month, today))
	}

	return Report{
		Month:           month,
		Today:           today,
		Profitabilities: profs,
		Summary:         Aggregate(profs),
	}
}

// FilterActiveClients returns the clients with IsActive set.
func FilterActiveClients(clients []model.Client) []model.Client {
	var result []model.Client
	for _, c := range clients {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result
}

// SortKey selects the column a profitability list is ordered by.
type SortKey string

const (
	SortByMargin  SortKey = "margin"
	SortByRevenue SortKey = "revenue"
	SortBySpent   SortKey = "spent"
)

// ParseSortKey maps user input to a SortKey, defaulting to margin.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByRevenue:
		return SortByRevenue
	case SortBySpent:
		return SortBySpent
	default:
		return SortByMargin
	}
}

// SortProfitabilities returns a sorted copy of ps. Margin sorts by margin
// percentage, the others by absolute amount.
func SortProfitabilities(ps []model.ClientProfitability, key SortKey, desc bool) []model.ClientProfitability {
	sorted := make([]model.ClientProfitability, len(ps))
	copy(sorted, ps)

	value := func(p model.ClientProfitability) float64 {
		switch key {
		case SortByRevenue:
			return p.Revenue
		case SortBySpent:
			return p.Spent
		default:
			return p.MarginPercent
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return value(sorted[i]) > value(sorted[j])
		}
		return value(sorted[i]) < value(sorted[j])
	})
	return sorted
}

// MonthActivity sums hours and cost across all clients for the month
// containing month. Entries with an unknown member count toward hours but
// add no cost.
func MonthActivity(entries []model.TimeEntry, members []model.TeamMember, month time.Time) (hours, cost float64) {
	start, end := MonthBounds(month)

	memberByID := make(map[string]model.TeamMember, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	for _, e := range entries {
		if !InMonth(e.Date, start, end) {
			continue
		}
		hours += e.Hours
		if m, ok := memberByID[e.TeamMemberID]; ok {
			cost += e.Hours * m.CostRate
		}
	}
	return hours, cost
}

// FilterEntries returns entries matching the client and member IDs.
// An empty filter matches everything.
func FilterEntries(entries []model.TimeEntry, clientID, memberID string) []model.TimeEntry {
	if clientID == "" && memberID == "" {
		return entries
	}
	var result []model.TimeEntry
	for _, e := range entries {
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		if memberID != "" && e.TeamMemberID != memberID {
			continue
		}
		result = append(result, e)
	}
	return result
}

// EntryGroup is the set of time entries logged in one calendar month.
type EntryGroup struct {
	Month   string // YYYY-MM
	Entries []model.TimeEntry
	Hours   float64
}

// GroupEntriesByMonth buckets entries by YYYY-MM, newest month first, with
// entries inside each bucket newest day first.
func GroupEntriesByMonth(entries []model.TimeEntry) []EntryGroup {
	sorted := make([]model.TimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})

	var groups []EntryGroup
	idx := make(map[string]int)
	for _, e := range sorted {
		key := e.Date.MonthKey()
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, EntryGroup{Month: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].Hours += e.Hours
	}
	return groups
}

// Band classifies a figure for presentation.
type Band int

const (
	BandGood Band = iota
	BandWarn
	BandBad
)

// MarginBand rates a margin percentage: 40+ good, 20+ warn, else bad.
func MarginBand(marginPercent float64) Band {
	switch {
	case marginPercent >= 40:
		return BandGood
	case marginPercent >= 20:
		return BandWarn
	default:
		return BandBad
	}
}

// BurnBand rates how much of the retainer has been spent: over 80 bad,
// over 60 warn.
func BurnBand(burnPercent float64) Band {
	switch {
	case burnPercent > 80:
		return BandBad
	case burnPercent > 60:
		return BandWarn
	default:
		return BandGood
	}
}

// DailySpend returns the client's labor cost for each day of month's month,
// index 0 being the 1st. Member misses are skipped.
func DailySpend(clientID string, entries []model.TimeEntry, members []model.TeamMember, month time.Time) []float64 {
	start, end := MonthBounds(month)
	days := make([]float64, end.Day())

	rates := make(map[string]float64, len(members))
	for _, m := range members {
		rates[m.ID] = m.CostRate
	}

	for _, e := range entries {
		if e.ClientID != clientID || !InMonth(e.Date, start, end) {
			continue
		}
		rate, ok := rates[e.TeamMemberID]
		if !ok {
			continue
		}
		days[e.Date.Day()-1] += e.Hours * rate
	}
	return days
}
