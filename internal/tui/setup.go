package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/burnrate/internal/config"
	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/tui/theme"
)

// SetupValues backs the fields of the setup form.
type SetupValues struct {
	Owner       string
	DefaultSort string
	Theme       string
}

// SetupValuesFrom seeds form values from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Owner:       cfg.General.Owner,
		DefaultSort: string(pipeline.ParseSortKey(cfg.General.DefaultSort)),
		Theme:       theme.ByName(cfg.Appearance.Theme).Name,
	}
}

func validateOwner(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("owner cannot be empty")
	}
	return nil
}

// NewSetupForm builds the first-run form. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Owner").
				Description("Scopes every client, team member and time entry.").
				Placeholder(config.DefaultOwner).
				Validate(validateOwner).
				Value(&vals.Owner),
			huh.NewSelect[string]().
				Title("Sort clients by").
				Options(
					huh.NewOption("Margin %", string(pipeline.SortByMargin)),
					huh.NewOption("Revenue", string(pipeline.SortByRevenue)),
					huh.NewOption("Spent", string(pipeline.SortBySpent)),
				).
				Value(&vals.DefaultSort),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),
		).Title("Welcome to burnrate"),
	).WithShowHelp(true)
}

// ApplySetup copies form answers onto cfg.
func ApplySetup(cfg config.Config, vals SetupValues) config.Config {
	if owner := strings.TrimSpace(vals.Owner); owner != "" {
		cfg.General.Owner = owner
	}
	cfg.General.DefaultSort = string(pipeline.ParseSortKey(vals.DefaultSort))
	cfg.Appearance.Theme = theme.ByName(vals.Theme).Name
	return cfg
}
