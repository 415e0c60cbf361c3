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

const unknownName = "Unknown"

func (a App) clientName(id string) string {
	if c, ok := a.clients[id]; ok {
		return c.Name
	}
	return unknownName
}

func (a App) memberName(id string) string {
	if m, ok := a.members[id]; ok {
		return m.Name
	}
	return unknownName
}

// entryLines renders the entries list one line per row so the tab can
// scroll it by line offset.
func (a App) entryLines(innerW int) []string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	text := lipgloss.NewStyle().Foreground(t.TextPrimary)
	group := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	const (
		dateW   = 12
		hoursW  = 7
		costW   = 9
		spacing = 4
	)
	nameW := max((innerW-dateW-hoursW-costW-spacing)/3, 8)
	noteW := max(innerW-dateW-hoursW-costW-spacing-2*nameW-1, 0)

	entries := pipeline.FilterEntries(a.dataset.Entries, a.entryClient, "")
	var lines []string
	for _, g := range pipeline.GroupEntriesByMonth(entries) {
		lines = append(lines, group.Render(cli.FormatMonthKey(g.Month))+dim.Render("  "+cli.FormatHours(g.Hours)))

		for _, e := range g.Entries {
			cost := "-"
			if m, ok := a.members[e.TeamMemberID]; ok {
				cost = cli.FormatCurrency(e.Hours * m.CostRate)
			}
			line := muted.Render(fmt.Sprintf("%-*s", dateW, cli.FormatDate(e.Date))) + " " +
				text.Render(fmt.Sprintf("%-*s", nameW, truncStr(a.clientName(e.ClientID), nameW))) + " " +
				muted.Render(fmt.Sprintf("%-*s", nameW, truncStr(a.memberName(e.TeamMemberID), nameW))) + " " +
				text.Render(fmt.Sprintf("%*s", hoursW, cli.FormatHours(e.Hours))) + " " +
				text.Render(fmt.Sprintf("%*s", costW, cost))
			if noteW > 0 && e.Note != "" {
				line += " " + dim.Render(truncStr(e.Note, noteW))
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	hours, cost := pipeline.MonthActivity(a.dataset.Entries, a.dataset.Members, a.report.Month)
	header := components.MetricCardRow([]components.Metric{
		{Label: "Hours this month", Value: cli.FormatHours(hours)},
		{Label: "Cost this month", Value: cli.FormatCurrency(cost)},
		{Label: "Entries", Value: cli.FormatNumber(int64(len(a.dataset.Entries)))},
	}, cw)

	lines := a.entryLines(innerW)
	title := "Time entries"
	if a.entryClient != "" {
		title += " · " + a.clientName(a.entryClient) + "  (esc clears)"
	}
	if len(lines) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Render("No time entries.")
		return header + "\n" + components.ContentCard(title, body, cw)
	}

	// Card chrome takes three lines: two borders and the title.
	visible := max(h-lipgloss.Height(header)-3, 1)
	offset := min(a.entryOffset, max(len(lines)-visible, 0))
	end := min(offset+visible, len(lines))

	return header + "\n" + components.ContentCard(title, strings.Join(lines[offset:end], "\n"), cw)
}
