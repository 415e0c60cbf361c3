package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/components"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	sum := a.report.Summary
	var b strings.Builder

	if a.loadErr != nil && len(a.dataset.Clients) == 0 {
		return components.ContentCard("Could not load data",
			lipgloss.NewStyle().Foreground(t.Bad).Render(a.loadErr.Error()), cw)
	}

	// Row 1: summary cards
	spentShare := ""
	if sum.TotalRevenue > 0 {
		spentShare = cli.FormatPercent(sum.TotalSpent/sum.TotalRevenue*100) + " of revenue"
	}
	riskColor := t.Good
	if sum.AtRiskCount > 0 {
		riskColor = t.Bad
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Revenue", Value: cli.FormatCurrency(sum.TotalRevenue), Delta: "monthly retainers"},
		{Label: "Spent", Value: cli.FormatCurrency(sum.TotalSpent), Delta: spentShare},
		{
			Label: "Margin",
			Value: cli.FormatCurrency(sum.TotalMargin),
			Delta: cli.FormatPercent(sum.OverallMarginPercent),
			Color: components.BandColor(pipeline.MarginBand(sum.OverallMarginPercent)),
		},
		{
			Label: "Clients",
			Value: cli.FormatNumber(int64(sum.ClientCount)),
			Delta: fmt.Sprintf("%d at risk", sum.AtRiskCount),
			Color: riskColor,
		},
	}, cw))
	b.WriteString("\n")

	// Row 2: at-risk banner
	if banner := atRiskBanner(a.sorted); banner != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Bad).Bold(true).Render(banner))
		b.WriteString("\n")
	}

	if len(a.sorted) == 0 {
		b.WriteString(components.ContentCard("",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("No active clients. Run `burnrate seed` to load demo data."), cw))
		return b.String()
	}

	// Row 3+: one card per client
	perRow := 2
	if a.isCompactLayout() {
		perRow = 1
	}
	widths := components.LayoutRow(cw, perRow)
	for start := 0; start < len(a.sorted); start += perRow {
		end := min(start+perRow, len(a.sorted))
		cards := make([]string, 0, perRow)
		for i, p := range a.sorted[start:end] {
			cards = append(cards, a.clientCard(p, widths[i]))
		}
		b.WriteString(components.CardRow(cards))
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) clientCard(p model.ClientProfitability, outerWidth int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerWidth)

	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)
	marginStyle := lipgloss.NewStyle().Foreground(components.BandColor(pipeline.MarginBand(p.MarginPercent))).Bold(true)
	projStyle := lipgloss.NewStyle().Foreground(components.BandColor(pipeline.MarginBand(p.ProjectedMarginPercent)))

	var body strings.Builder
	fmt.Fprintf(&body, "%s %s  %s %s  %s %s\n",
		muted.Render("Retainer"), value.Render(cli.FormatCurrency(p.Revenue)),
		muted.Render("Spent"), value.Render(cli.FormatCurrency(p.Spent)),
		muted.Render("Margin"), marginStyle.Render(cli.FormatPercent(p.MarginPercent)))
	body.WriteString(components.BurnBar(p.BurnPercent, innerW))
	body.WriteString("\n")
	fmt.Fprintf(&body, "%s %s %s %s  %s %s/day\n",
		muted.Render("Projected"), value.Render(cli.FormatCurrency(p.ProjectedEndOfMonthSpent)),
		muted.Render(cli.FormatDelta(p.ProjectedEndOfMonthSpent, p.Spent)),
		projStyle.Render("("+cli.FormatPercent(p.ProjectedMarginPercent)+")"),
		muted.Render("Burn"), value.Render(cli.FormatCurrency(p.DailyBurnRate)))

	spend := pipeline.DailySpend(p.Client.ID, a.dataset.Entries, a.dataset.Members, a.report.Month)
	if len(spend) > innerW {
		spend = spend[:innerW]
	}
	body.WriteString(components.Sparkline(spend, t.Accent))

	title := truncStr(p.Client.Name, innerW-10)
	if p.IsAtRisk {
		title += lipgloss.NewStyle().Foreground(t.Bad).Render("  AT RISK")
	}
	return components.ContentCard(title, body.String(), outerWidth)
}

// atRiskBanner names the clients projected to finish the month under the
// at-risk margin, or returns "" when there are none.
func atRiskBanner(ps []model.ClientProfitability) string {
	var names []string
	for _, p := range ps {
		if p.IsAtRisk {
			names = append(names, p.Client.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	noun := "client"
	if len(names) > 1 {
		noun = "clients"
	}
	return fmt.Sprintf("! %d %s at risk of dropping below %.0f%% margin: %s",
		len(names), noun, pipeline.AtRiskMarginPercent, strings.Join(names, ", "))
}
