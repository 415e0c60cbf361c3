package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

// BandColor maps a rating band to the active theme's palette.
func BandColor(b pipeline.Band) lipgloss.Color {
	t := theme.Active
	switch b {
	case pipeline.BandGood:
		return t.Good
	case pipeline.BandWarn:
		return t.Warn
	default:
		return t.Bad
	}
}

// BurnBar renders retainer consumption as a progress bar followed by the
// percentage. The bar saturates at 100% but the label shows the real figure.
func BurnBar(burnPercent float64, width int) string {
	t := theme.Active
	color := BandColor(pipeline.BurnBand(burnPercent))

	label := fmt.Sprintf("%4.0f%%", burnPercent)
	barW := width - lipgloss.Width(label) - 1
	if barW < 4 {
		barW = 4
	}

	frac := burnPercent / 100
	frac = max(0, min(frac, 1))

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	return bar.ViewAs(frac) + " " + lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
}
