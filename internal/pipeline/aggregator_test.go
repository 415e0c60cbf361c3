package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

func prof(name string, revenue, spent float64, atRisk bool) model.ClientProfitability {
	return model.ClientProfitability{
		Client:        model.Client{ID: name, Name: name},
		Revenue:       revenue,
		Spent:         spent,
		Margin:        revenue - spent,
		MarginPercent: percentOf(revenue-spent, revenue),
		IsAtRisk:      atRisk,
	}
}

func TestAggregate(t *testing.T) {
	ps := []model.ClientProfitability{
		prof("a", 8000, 1820, false),
		prof("b", 5000, 1785, true),
		prof("c", 2500, 1575, true),
	}

	s := Aggregate(ps)
	approx(t, "TotalRevenue", s.TotalRevenue, 15500)
	approx(t, "TotalSpent", s.TotalSpent, 5180)
	approx(t, "TotalMargin", s.TotalMargin, 10320)
	approx(t, "OverallMarginPercent", s.OverallMarginPercent, 10320.0/15500*100)
	if s.ClientCount != 3 {
		t.Fatalf("ClientCount = %d, want 3", s.ClientCount)
	}
	if s.AtRiskCount != 2 {
		t.Fatalf("AtRiskCount = %d, want 2", s.AtRiskCount)
	}
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	if s != (model.MonthlySummary{}) {
		t.Fatalf("Aggregate(nil) = %+v, want zero summary", s)
	}
}

func TestAggregate_ZeroRevenue(t *testing.T) {
	s := Aggregate([]model.ClientProfitability{prof("a", 0, 300, true)})
	if s.OverallMarginPercent != 0 {
		t.Fatalf("OverallMarginPercent = %v, want 0", s.OverallMarginPercent)
	}
	approx(t, "TotalMargin", s.TotalMargin, -300)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	ps := []model.ClientProfitability{
		prof("a", 8000, 1820.5, false),
		prof("b", 5000, 1785.25, true),
		prof("c", 2500, 1575.75, true),
		prof("d", 1200, 0, false),
		prof("e", 0, 95.5, true),
	}
	want := Aggregate(ps)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]model.ClientProfitability, len(ps))
		copy(shuffled, ps)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Aggregate(shuffled)
		approx(t, "TotalRevenue", got.TotalRevenue, want.TotalRevenue)
		approx(t, "TotalSpent", got.TotalSpent, want.TotalSpent)
		approx(t, "TotalMargin", got.TotalMargin, want.TotalMargin)
		approx(t, "OverallMarginPercent", got.OverallMarginPercent, want.OverallMarginPercent)
		if got.ClientCount != want.ClientCount || got.AtRiskCount != want.AtRiskCount {
			t.Fatalf("counts = %d/%d, want %d/%d", got.ClientCount, got.AtRiskCount, want.ClientCount, want.AtRiskCount)
		}
		if got.AtRiskCount > got.ClientCount {
			t.Fatalf("AtRiskCount %d > ClientCount %d", got.AtRiskCount, got.ClientCount)
		}
	}
}

func TestBuildReport_SkipsInactiveClients(t *testing.T) {
	ds := Dataset{
		Clients: []model.Client{
			{ID: "c1", Name: "Active", MonthlyRetainer: 1000, IsActive: true},
			{ID: "c2", Name: "Paused", MonthlyRetainer: 4000, IsActive: false},
		},
		Members: []model.TeamMember{{ID: "m1", CostRate: 50}},
		Entries: []model.TimeEntry{
			entry("e1", "c1", "m1", model.NewDate(2025, time.June, 3), 2),
			entry("e2", "c2", "m1", model.NewDate(2025, time.June, 3), 2),
		},
	}

	r := BuildReport(ds, june(10), june(10))
	if len(r.Profitabilities) != 1 || r.Profitabilities[0].Client.ID != "c1" {
		t.Fatalf("Profitabilities = %+v, want only c1", r.Profitabilities)
	}
	if r.Summary.ClientCount != 1 {
		t.Fatalf("ClientCount = %d, want 1", r.Summary.ClientCount)
	}
	approx(t, "TotalRevenue", r.Summary.TotalRevenue, 1000)
	approx(t, "TotalSpent", r.Summary.TotalSpent, 100)
}

func TestSortProfitabilities(t *testing.T) {
	ps := []model.ClientProfitability{
		prof("low-margin", 1000, 900, true),
		prof("big", 9000, 3000, false),
		prof("lean", 2000, 100, false),
	}

	names := func(ps []model.ClientProfitability) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Client.Name
		}
		return out
	}

	tests := []struct {
		key  SortKey
		desc bool
		want []string
	}{
		{SortByMargin, true, []string{"lean", "big", "low-margin"}},
		{SortByMargin, false, []string{"low-margin", "big", "lean"}},
		{SortByRevenue, true, []string{"big", "lean", "low-margin"}},
		{SortBySpent, false, []string{"lean", "low-margin", "big"}},
	}
	for _, tt := range tests {
		got := names(SortProfitabilities(ps, tt.key, tt.desc))
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Fatalf("sort %s desc=%v = %v, want %v", tt.key, tt.desc, got, tt.want)
			}
		}
	}

	if ps[0].Client.Name != "low-margin" {
		t.Fatal("SortProfitabilities mutated its input")
	}
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"":         SortByMargin,
		"margin":   SortByMargin,
		"Revenue":  SortByRevenue,
		" spent ":  SortBySpent,
		"whatever": SortByMargin,
	}
	for in, want := range tests {
		if got := ParseSortKey(in); got != want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMonthActivity(t *testing.T) {
	members := []model.TeamMember{{ID: "m1", CostRate: 65}, {ID: "m2", CostRate: 85}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 3), 4),
		entry("e2", "c2", "m2", model.NewDate(2025, time.June, 3), 3),
		entry("e3", "c1", "gone", model.NewDate(2025, time.June, 4), 9),
		entry("e4", "c1", "m1", model.NewDate(2025, time.May, 30), 7),
	}

	hours, cost := MonthActivity(entries, members, june(20))
	approx(t, "hours", hours, 16)
	approx(t, "cost", cost, 4*65+3*85)
}

func TestMonthActivity_MatchesMonthGroupHours(t *testing.T) {
	members := []model.TeamMember{{ID: "m1", CostRate: 65}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 3), 4),
		entry("e2", "c1", "gone", model.NewDate(2025, time.June, 5), 9),
	}

	hours, cost := MonthActivity(entries, members, june(20))
	groups := GroupEntriesByMonth(entries)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	approx(t, "hours", hours, groups[0].Hours)
	approx(t, "hours", hours, 13)
	approx(t, "cost", cost, 260)
}

func TestFilterEntries(t *testing.T) {
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 3), 1),
		entry("e2", "c1", "m2", model.NewDate(2025, time.June, 3), 1),
		entry("e3", "c2", "m1", model.NewDate(2025, time.June, 3), 1),
	}

	if got := FilterEntries(entries, "", ""); len(got) != 3 {
		t.Fatalf("no filter len = %d, want 3", len(got))
	}
	if got := FilterEntries(entries, "c1", ""); len(got) != 2 {
		t.Fatalf("client filter len = %d, want 2", len(got))
	}
	got := FilterEntries(entries, "c1", "m2")
	if len(got) != 1 || got[0].ID != "e2" {
		t.Fatalf("client+member filter = %+v, want [e2]", got)
	}
}

func TestGroupEntriesByMonth(t *testing.T) {
	entries := []model.TimeEntry{
		entry("may", "c1", "m1", model.NewDate(2025, time.May, 20), 1),
		entry("jun-early", "c1", "m1", model.NewDate(2025, time.June, 2), 2),
		entry("jun-late", "c1", "m1", model.NewDate(2025, time.June, 28), 3),
		entry("apr", "c1", "m1", model.NewDate(2025, time.April, 1), 4),
	}

	groups := GroupEntriesByMonth(entries)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	wantMonths := []string{"2025-06", "2025-05", "2025-04"}
	for i, g := range groups {
		if g.Month != wantMonths[i] {
			t.Fatalf("groups[%d].Month = %s, want %s", i, g.Month, wantMonths[i])
		}
	}
	if groups[0].Entries[0].ID != "jun-late" || groups[0].Entries[1].ID != "jun-early" {
		t.Fatalf("June entries not newest first: %s, %s", groups[0].Entries[0].ID, groups[0].Entries[1].ID)
	}
	approx(t, "June hours", groups[0].Hours, 5)
}

func TestBands(t *testing.T) {
	marginTests := map[float64]Band{45: BandGood, 40: BandGood, 39.9: BandWarn, 20: BandWarn, 19.9: BandBad, -5: BandBad}
	for pct, want := range marginTests {
		if got := MarginBand(pct); got != want {
			t.Errorf("MarginBand(%v) = %v, want %v", pct, got, want)
		}
	}
	burnTests := map[float64]Band{10: BandGood, 60: BandGood, 60.1: BandWarn, 80: BandWarn, 80.1: BandBad, 250: BandBad}
	for pct, want := range burnTests {
		if got := BurnBand(pct); got != want {
			t.Errorf("BurnBand(%v) = %v, want %v", pct, got, want)
		}
	}
}

func TestDailySpend(t *testing.T) {
	members := []model.TeamMember{{ID: "m1", CostRate: 50}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 1), 2),
		entry("e2", "c1", "m1", model.NewDate(2025, time.June, 1), 1),
		entry("e3", "c1", "m1", model.NewDate(2025, time.June, 30), 4),
		entry("e4", "c2", "m1", model.NewDate(2025, time.June, 2), 8),
		entry("e5", "c1", "nobody", model.NewDate(2025, time.June, 3), 8),
		entry("e6", "c1", "m1", model.NewDate(2025, time.July, 1), 8),
	}

	days := DailySpend("c1", entries, members, june(10))
	if len(days) != 30 {
		t.Fatalf("len = %d, want 30", len(days))
	}
	approx(t, "day 1", days[0], 150)
	approx(t, "day 2", days[1], 0)
	approx(t, "day 3", days[2], 0)
	approx(t, "day 30", days[29], 200)

	var total float64
	for _, d := range days {
		total += d
	}
	p := ComputeProfitability(model.Client{ID: "c1", MonthlyRetainer: 1000}, entries, members, june(10), june(10))
	approx(t, "sum of days", total, p.Spent)
}
