package model

// ClientProfitability holds one client's figures for one month.
// It is recomputed on every view and never persisted.
type ClientProfitability struct {
	Client Client `json:"client"`

	Revenue       float64 `json:"revenue"`
	Spent         float64 `json:"spent"`
	Margin        float64 `json:"margin"`
	MarginPercent float64 `json:"margin_percent"`
	HoursLogged   float64 `json:"hours_logged"`

	DailyBurnRate            float64 `json:"daily_burn_rate"`
	ProjectedEndOfMonthSpent float64 `json:"projected_end_of_month_spent"`
	ProjectedMargin          float64 `json:"projected_margin"`
	ProjectedMarginPercent   float64 `json:"projected_margin_percent"`

	IsAtRisk    bool    `json:"is_at_risk"`
	BurnPercent float64 `json:"burn_percent"` // spent/revenue, may exceed 100
}

// MonthlySummary is the agency-wide rollup of a set of ClientProfitability.
type MonthlySummary struct {
	TotalRevenue         float64 `json:"total_revenue"`
	TotalSpent           float64 `json:"total_spent"`
	TotalMargin          float64 `json:"total_margin"`
	OverallMarginPercent float64 `json:"overall_margin_percent"`
	ClientCount          int     `json:"client_count"`
	AtRiskCount          int     `json:"at_risk_count"`
}
