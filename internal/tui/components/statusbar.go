package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports about the loaded data.
type StatusInfo struct {
	Owner      string
	Month      string
	DataAge    string
	Refreshing bool
	Err        string
}

// RenderStatusBar renders the bottom status line across width columns.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	left := " [?]help  [r]efresh  [q]uit"

	var right []string
	if info.Err != "" {
		right = append(right, lipgloss.NewStyle().Foreground(t.Bad).Render(info.Err))
	}
	if info.Owner != "" {
		right = append(right, info.Owner)
	}
	if info.Month != "" {
		right = append(right, info.Month)
	}
	switch {
	case info.Refreshing:
		right = append(right, lipgloss.NewStyle().Foreground(t.Accent).Render("refreshing"))
	case info.DataAge != "":
		right = append(right, "data "+info.DataAge)
	}
	rightStr := strings.Join(right, "  ") + " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 1 {
		padding = 1
	}
	return muted.Render(left + strings.Repeat(" ", padding) + rightStr)
}
