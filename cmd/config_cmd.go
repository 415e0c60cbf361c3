package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// runConfig prints appConfig after env and flag overrides were applied,
// which can differ from what config.toml holds.
func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	source := "defaults (no config file)"
	if config.Exists() {
		source = config.Path()
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Configuration",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Source", source},
			{"Overrides", fmt.Sprintf("%s, %s, --owner, --db", config.EnvOwner, config.EnvDB)},
			cli.SeparatorRow,
			{"general.owner", cfg.General.Owner},
			{"general.db_path", cfg.DBPath()},
			{"general.default_sort", cfg.General.DefaultSort},
			{"appearance.theme", cfg.Appearance.Theme},
			{"daemon.addr", cfg.Daemon.Addr},
			{"daemon.interval_sec", strconv.Itoa(cfg.Daemon.IntervalSec)},
			{"tui.auto_refresh", strconv.FormatBool(cfg.TUI.AutoRefresh)},
			{"tui.refresh_interval_sec", strconv.Itoa(cfg.TUI.RefreshIntervalSec)},
		},
	}))
	if !flagQuiet {
		fmt.Println(cli.RenderMuted("  Run `burnrate setup` to reconfigure."))
	}
	return nil
}
