package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/components"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

type clientColumn struct {
	title string
	width int
	sort  pipeline.SortKey // empty when the column is not sortable
}

var clientColumns = []clientColumn{
	{"Retainer", 10, pipeline.SortByRevenue},
	{"Spent", 10, pipeline.SortBySpent},
	{"Margin", 10, ""},
	{"Margin %", 9, pipeline.SortByMargin},
	{"Hours", 8, ""},
	{"Burn/day", 9, ""},
	{"Projected", 10, ""},
	{"Proj %", 8, ""},
}

func (a App) renderClientsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	if len(a.sorted) == 0 {
		return components.ContentCard("Clients",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("No active clients."), cw)
	}

	fixed := 2 // cursor gutter
	for _, c := range clientColumns {
		fixed += c.width + 1
	}
	nameW := max(innerW-fixed, 12)

	head := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	active := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selected := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	arrow := "↓"
	if !a.sortDesc {
		arrow = "↑"
	}

	var b strings.Builder
	b.WriteString("  " + head.Render(fmt.Sprintf("%-*s", nameW, "Client")))
	for _, c := range clientColumns {
		title := c.title
		style := head
		if c.sort != "" && c.sort == a.sortKey {
			title += arrow
			style = active
		}
		b.WriteString(" " + style.Render(fmt.Sprintf("%*s", c.width, title)))
	}
	b.WriteString("\n")
	b.WriteString(dim.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")

	for i, p := range a.sorted {
		gutter := "  "
		nameStyle := text
		if i == a.clientCursor {
			gutter = active.Render("▸ ")
			nameStyle = selected
		}
		name := truncStr(p.Client.Name, nameW)
		b.WriteString(gutter + nameStyle.Render(fmt.Sprintf("%-*s", nameW, name)))

		cells := []struct {
			s     string
			color lipgloss.Color
		}{
			{cli.FormatCurrency(p.Revenue), t.TextPrimary},
			{cli.FormatCurrency(p.Spent), t.TextPrimary},
			{cli.FormatCurrency(p.Margin), components.BandColor(pipeline.MarginBand(p.MarginPercent))},
			{cli.FormatPercent(p.MarginPercent), components.BandColor(pipeline.MarginBand(p.MarginPercent))},
			{cli.FormatHours(p.HoursLogged), t.TextMuted},
			{cli.FormatCurrency(p.DailyBurnRate), t.TextMuted},
			{cli.FormatCurrency(p.ProjectedEndOfMonthSpent), t.TextMuted},
			{cli.FormatPercent(p.ProjectedMarginPercent), components.BandColor(pipeline.MarginBand(p.ProjectedMarginPercent))},
		}
		for j, c := range cells {
			b.WriteString(" " + lipgloss.NewStyle().Foreground(c.color).Render(fmt.Sprintf("%*s", clientColumns[j].width, c.s)))
		}
		if p.IsAtRisk {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Bad).Render(" !"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("m/v/s sort · same key flips direction · enter shows entries"))

	return components.ContentCard(fmt.Sprintf("Clients (%d)", len(a.sorted)), b.String(), cw)
}
