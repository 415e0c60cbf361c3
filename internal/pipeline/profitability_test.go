package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

const eps = 1e-9

func june(day int) time.Time {
	return time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC)
}

func entry(id, clientID, memberID string, d model.Date, hours float64) model.TimeEntry {
	return model.TimeEntry{ID: id, ClientID: clientID, TeamMemberID: memberID, Date: d, Hours: hours}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func assertFinite(t *testing.T, p model.ClientProfitability) {
	t.Helper()
	for name, v := range map[string]float64{
		"Revenue":                  p.Revenue,
		"Spent":                    p.Spent,
		"Margin":                   p.Margin,
		"MarginPercent":            p.MarginPercent,
		"HoursLogged":              p.HoursLogged,
		"DailyBurnRate":            p.DailyBurnRate,
		"ProjectedEndOfMonthSpent": p.ProjectedEndOfMonthSpent,
		"ProjectedMargin":          p.ProjectedMargin,
		"ProjectedMarginPercent":   p.ProjectedMarginPercent,
		"BurnPercent":              p.BurnPercent,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s = %v, want finite", name, v)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		month      time.Time
		start, end string
		days       int
	}{
		{time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC), "2025-06-01", "2025-06-30", 30},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29", 29},
		{time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), "2025-02-01", "2025-02-28", 28},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "2025-12-01", "2025-12-31", 31},
	}
	for _, tt := range tests {
		start, end := MonthBounds(tt.month)
		if start.String() != tt.start || end.String() != tt.end {
			t.Errorf("MonthBounds(%s) = %s..%s, want %s..%s", tt.month, start, end, tt.start, tt.end)
		}
		if got := DaysInMonth(tt.month); got != tt.days {
			t.Errorf("DaysInMonth(%s) = %d, want %d", tt.month, got, tt.days)
		}
	}
}

func TestComputeProfitability_BasicMargin(t *testing.T) {
	client := model.Client{ID: "c1", Name: "TechStart", MonthlyRetainer: 5000, IsActive: true}
	members := []model.TeamMember{{ID: "m1", CostRate: 85}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 2), 6),
		entry("e2", "c1", "m1", model.NewDate(2025, time.June, 9), 4),
	}

	p := ComputeProfitability(client, entries, members, june(15), june(15))

	approx(t, "Revenue", p.Revenue, 5000)
	approx(t, "Spent", p.Spent, 850)
	approx(t, "Margin", p.Margin, 4150)
	approx(t, "MarginPercent", p.MarginPercent, 83.0)
	approx(t, "HoursLogged", p.HoursLogged, 10)
	approx(t, "BurnPercent", p.BurnPercent, 17)
	approx(t, "DailyBurnRate", p.DailyBurnRate, 850.0/15)
	approx(t, "ProjectedEndOfMonthSpent", p.ProjectedEndOfMonthSpent, 1700)
	approx(t, "ProjectedMarginPercent", p.ProjectedMarginPercent, 66)
	if p.IsAtRisk {
		t.Fatal("IsAtRisk = true, want false")
	}
	if p.Client.ID != "c1" {
		t.Fatalf("Client.ID = %q, want c1", p.Client.ID)
	}
}

func TestComputeProfitability_NegativeMarginIsAtRisk(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 100}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 1), 12),
	}

	// Reference day at month end so the projection equals actual spend;
	// the flag must come from the negative actual margin either way.
	for _, today := range []time.Time{june(1), june(30)} {
		p := ComputeProfitability(client, entries, members, june(1), today)
		approx(t, "Spent", p.Spent, 1200)
		approx(t, "Margin", p.Margin, -200)
		approx(t, "MarginPercent", p.MarginPercent, -20)
		if !p.IsAtRisk {
			t.Fatalf("IsAtRisk = false for today=%s, want true", today.Format("2006-01-02"))
		}
	}
}

func TestComputeProfitability_ZeroRevenue(t *testing.T) {
	members := []model.TeamMember{{ID: "m1", CostRate: 50}}
	entries := []model.TimeEntry{entry("e1", "c1", "m1", model.NewDate(2025, time.June, 3), 2)}

	for _, retainer := range []float64{0, -500} {
		client := model.Client{ID: "c1", MonthlyRetainer: retainer}
		p := ComputeProfitability(client, entries, members, june(10), june(10))

		assertFinite(t, p)
		if p.MarginPercent != 0 || p.ProjectedMarginPercent != 0 || p.BurnPercent != 0 {
			t.Fatalf("retainer %v: percents = %v/%v/%v, want all 0",
				retainer, p.MarginPercent, p.ProjectedMarginPercent, p.BurnPercent)
		}
		approx(t, "Margin", p.Margin, retainer-100)
		// Projected margin percent is 0 < 30, so the client is flagged.
		if !p.IsAtRisk {
			t.Fatalf("retainer %v: IsAtRisk = false, want true", retainer)
		}
	}
}

func TestComputeProfitability_ExcludesOutOfMonthEntries(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 10}}
	entries := []model.TimeEntry{
		entry("before", "c1", "m1", model.NewDate(2025, time.May, 31), 100),
		entry("first", "c1", "m1", model.NewDate(2025, time.June, 1), 1),
		entry("last", "c1", "m1", model.NewDate(2025, time.June, 30), 2),
		entry("after", "c1", "m1", model.NewDate(2025, time.July, 1), 100),
	}

	p := ComputeProfitability(client, entries, members, june(20), june(20))
	approx(t, "HoursLogged", p.HoursLogged, 3)
	approx(t, "Spent", p.Spent, 30)
}

func TestComputeProfitability_IgnoresOtherClients(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 10}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 5), 1),
		entry("e2", "c2", "m1", model.NewDate(2025, time.June, 5), 50),
	}

	p := ComputeProfitability(client, entries, members, june(5), june(5))
	approx(t, "HoursLogged", p.HoursLogged, 1)
	approx(t, "Spent", p.Spent, 10)
}

func TestComputeProfitability_UnknownMemberContributesNothing(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 10}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 5), 1),
		entry("e2", "c1", "deleted-member", model.NewDate(2025, time.June, 5), 8),
	}

	p := ComputeProfitability(client, entries, members, june(5), june(5))
	approx(t, "HoursLogged", p.HoursLogged, 1)
	approx(t, "Spent", p.Spent, 10)
}

func TestComputeProfitability_NoEntries(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 2500}

	p := ComputeProfitability(client, nil, nil, june(5), june(5))
	assertFinite(t, p)
	approx(t, "MarginPercent", p.MarginPercent, 100)
	approx(t, "ProjectedMarginPercent", p.ProjectedMarginPercent, 100)
	if p.IsAtRisk {
		t.Fatal("IsAtRisk = true, want false")
	}
}

func TestComputeProfitability_MarginIdentities(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 3333.33}
	members := []model.TeamMember{{ID: "m1", CostRate: 71.5}, {ID: "m2", CostRate: 43.25}}
	entries := []model.TimeEntry{
		entry("e1", "c1", "m1", model.NewDate(2025, time.June, 2), 3.75),
		entry("e2", "c1", "m2", model.NewDate(2025, time.June, 3), 1.2),
		entry("e3", "c1", "m1", model.NewDate(2025, time.June, 11), 0.5),
	}

	for day := 1; day <= 30; day++ {
		p := ComputeProfitability(client, entries, members, june(1), june(day))
		assertFinite(t, p)
		approx(t, "Margin", p.Margin, p.Revenue-p.Spent)
		approx(t, "ProjectedMargin", p.ProjectedMargin, p.Revenue-p.ProjectedEndOfMonthSpent)
		if p.IsAtRisk != (p.ProjectedMarginPercent < 30 || p.MarginPercent < 0) {
			t.Fatalf("day %d: IsAtRisk = %v inconsistent with %v/%v",
				day, p.IsAtRisk, p.ProjectedMarginPercent, p.MarginPercent)
		}
	}
}

func TestComputeProfitability_ProjectionUsesReferenceDay(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 10}}
	entries := []model.TimeEntry{entry("e1", "c1", "m1", model.NewDate(2025, time.February, 2), 10)}

	// February 2025 has 28 days; a reference day of 31 clamps to 28.
	feb := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	p := ComputeProfitability(client, entries, members, feb, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC))
	approx(t, "DailyBurnRate", p.DailyBurnRate, 100.0/28)
	approx(t, "ProjectedEndOfMonthSpent", p.ProjectedEndOfMonthSpent, 100)

	// Day 7 of any month projects a 4x spend across February.
	p = ComputeProfitability(client, entries, members, feb, time.Date(2025, time.August, 7, 0, 0, 0, 0, time.UTC))
	approx(t, "ProjectedEndOfMonthSpent", p.ProjectedEndOfMonthSpent, 400)
}

func TestComputeProfitability_AtRiskBoundary(t *testing.T) {
	client := model.Client{ID: "c1", MonthlyRetainer: 1000}
	members := []model.TeamMember{{ID: "m1", CostRate: 1}}

	// On the last day the projection equals the spend, so spend 700 gives
	// exactly a 30% projected margin.
	exact := []model.TimeEntry{entry("e1", "c1", "m1", model.NewDate(2025, time.June, 4), 700)}
	p := ComputeProfitability(client, exact, members, june(30), june(30))
	approx(t, "ProjectedMarginPercent", p.ProjectedMarginPercent, 30)
	if p.IsAtRisk {
		t.Fatalf("IsAtRisk = true at %.10f%%, want false", p.ProjectedMarginPercent)
	}

	over := []model.TimeEntry{entry("e1", "c1", "m1", model.NewDate(2025, time.June, 4), 700.01)}
	p = ComputeProfitability(client, over, members, june(30), june(30))
	if !p.IsAtRisk {
		t.Fatalf("IsAtRisk = false at %.10f%%, want true", p.ProjectedMarginPercent)
	}
}

func TestIsAtRisk(t *testing.T) {
	tests := []struct {
		projected, actual float64
		want              bool
	}{
		{30.0, 50, false},
		{29.999, 50, true},
		{80, -0.01, true},
		{80, 0, false},
		{-10, -10, true},
	}
	for _, tt := range tests {
		if got := IsAtRisk(tt.projected, tt.actual); got != tt.want {
			t.Errorf("IsAtRisk(%v, %v) = %v, want %v", tt.projected, tt.actual, got, tt.want)
		}
	}
}
