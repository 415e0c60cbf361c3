package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/burnrate/internal/config"
	"github.com/theirongolddev/burnrate/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	var month time.Time
	if flagMonth != "" {
		m, _, err := reportDates()
		if err != nil {
			return err
		}
		month = m
	}
	now := time.Now
	if flagToday != "" {
		_, today, err := reportDates()
		if err != nil {
			return err
		}
		now = func() time.Time { return today }
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// Always emit color.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Source:    st,
		OwnerID:   appConfig.General.Owner,
		Month:     month,
		Now:       now,
		Config:    appConfig,
		NeedSetup: !config.Exists(),
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
