package pipeline

import (
	"time"

	"github.com/theirongolddev/burnrate/internal/model"
)

// AtRiskMarginPercent is the projected margin below which a client is
// flagged. A client whose actual margin is already negative is flagged
// regardless of projection.
const AtRiskMarginPercent = 30.0

// MonthBounds returns the first and last calendar day of the month that
// contains month. Both ends are inclusive.
func MonthBounds(month time.Time) (model.Date, model.Date) {
	y, m, _ := month.Date()
	start := model.NewDate(y, m, 1)
	end := model.NewDate(y, m+1, 0)
	return start, end
}

// DaysInMonth returns the number of calendar days in month's month.
func DaysInMonth(month time.Time) int {
	_, end := MonthBounds(month)
	return end.Day()
}

// InMonth reports whether d lies within [start, end].
func InMonth(d, start, end model.Date) bool {
	return !d.Before(start.Time) && !d.After(end.Time)
}

// ComputeProfitability derives one client's revenue, cost, margin and
// end-of-month projection for the month containing month.
//
// entries and members are the owner's full collections; filtering by month
// and client happens here. Entries whose member cannot be resolved add
// neither cost nor hours. today is the reference day used for the burn-rate
// projection: only its day-of-month is read, so projections for a month
// other than today's are not meaningful.
func ComputeProfitability(
	client model.Client,
	entries []model.TimeEntry,
	members []model.TeamMember,
	month time.Time,
	today time.Time,
) model.ClientProfitability {
	start, end := MonthBounds(month)

	memberByID := make(map[string]model.TeamMember, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	var spent, hours float64
	for _, e := range entries {
		if e.ClientID != client.ID || !InMonth(e.Date, start, end) {
			continue
		}
		m, ok := memberByID[e.TeamMemberID]
		if !ok {
			continue
		}
		spent += e.Hours * m.CostRate
		hours += e.Hours
	}

	revenue := client.MonthlyRetainer
	margin := revenue - spent

	totalDays := end.Day()
	daysPassed := today.Day()
	if daysPassed > totalDays {
		daysPassed = totalDays
	}
	var burnRate float64
	if daysPassed > 0 {
		burnRate = spent / float64(daysPassed)
	}
	projected := burnRate * float64(totalDays)
	projectedMargin := revenue - projected

	p := model.ClientProfitability{
		Client:                   client,
		Revenue:                  revenue,
		Spent:                    spent,
		Margin:                   margin,
		MarginPercent:            percentOf(margin, revenue),
		HoursLogged:              hours,
		DailyBurnRate:            burnRate,
		ProjectedEndOfMonthSpent: projected,
		ProjectedMargin:          projectedMargin,
		ProjectedMarginPercent:   percentOf(projectedMargin, revenue),
		BurnPercent:              percentOf(spent, revenue),
	}
	p.IsAtRisk = IsAtRisk(p.ProjectedMarginPercent, p.MarginPercent)
	return p
}

// IsAtRisk applies the fixed risk rule to a projected and an actual
// margin percentage.
func IsAtRisk(projectedMarginPercent, marginPercent float64) bool {
	return projectedMarginPercent < AtRiskMarginPercent || marginPercent < 0
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
