package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

// Tab is one entry in the tab bar. KeyPos is the index of the shortcut
// letter in Name, or -1 when the key is shown as a suffix.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int
}

// Tabs lists the dashboard views in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Clients", Key: 'c', KeyPos: 0},
	{Name: "Entries", Key: 'e', KeyPos: 0},
}

// tabSeparator sits between tabs.
const tabSeparator = " "

func renderTab(i, activeIdx int) string {
	t := theme.Active
	tab := Tabs[i]
	pad := lipgloss.NewStyle().Padding(0, 1)

	if i == activeIdx {
		return pad.Foreground(t.Accent).Bold(true).Render(tab.Name)
	}

	inactive := lipgloss.NewStyle().Foreground(t.TextMuted)
	key := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)

	var label string
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		label = inactive.Render(tab.Name[:tab.KeyPos]) +
			dim.Render("[") + key.Render(string(tab.Name[tab.KeyPos])) + dim.Render("]") +
			inactive.Render(tab.Name[tab.KeyPos+1:])
	} else {
		label = inactive.Render(tab.Name) +
			dim.Render("[") + key.Render(string(tab.Key)) + dim.Render("]")
	}
	return pad.Render(label)
}

// RenderTabBar renders every tab on one line with activeIdx highlighted.
func RenderTabBar(activeIdx int) string {
	parts := make([]string, len(Tabs))
	for i := range Tabs {
		parts[i] = renderTab(i, activeIdx)
	}
	return strings.Join(parts, tabSeparator)
}

// TabVisualWidth is the rendered width of tab i given the active tab.
func TabVisualWidth(i, activeIdx int) int {
	return lipgloss.Width(renderTab(i, activeIdx))
}

// TabIdxByKey returns the tab bound to key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x of a tab bar rendered with
// activeIdx, or -1 when x falls on a separator or past the last tab.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i := range Tabs {
		w := TabVisualWidth(i, activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + lipgloss.Width(tabSeparator)
	}
	return -1
}
