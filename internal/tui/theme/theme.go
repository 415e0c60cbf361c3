// Package theme defines color themes for the burnrate dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	// Chrome
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card, active tab
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Text, highest contrast last
	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	// Rating bands for margins and burn, plus a neutral highlight.
	Good lipgloss.Color
	Warn lipgloss.Color
	Bad  lipgloss.Color
	Info lipgloss.Color
}

// FlexokiDark is the default: warm, paper-like, low glare.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Good:         "#879A39",
	Warn:         "#D0A215",
	Bad:          "#D14D41",
	Info:         "#24837B",
}

// CatppuccinMocha uses soft pastels.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Good:         "#A6E3A1",
	Warn:         "#F9E2AF",
	Bad:          "#F38BA8",
	Info:         "#94E2D5",
}

// TokyoNight is a cool blue and purple palette.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Border:       "#565F89",
	BorderAccent: "#7AA2F7",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Good:         "#9ECE6A",
	Warn:         "#E0AF68",
	Bad:          "#F7768E",
	Info:         "#7DCFFF",
}

// Terminal sticks to the ANSI 16 palette so it follows the user's
// terminal colors.
var Terminal = Theme{
	Name:         "terminal",
	Border:       "8",
	BorderAccent: "6",
	Accent:       "6",
	AccentBright: "14",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Good:         "2",
	Warn:         "3",
	Bad:          "1",
	Info:         "6",
}

// All lists the selectable themes, default first.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Active is the theme every view renders with.
var Active = FlexokiDark

// Names returns the theme names in All order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName looks a theme up by name, falling back to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches Active to the named theme.
func SetActive(name string) {
	Active = ByName(name)
}
