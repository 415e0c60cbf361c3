// Package cmd implements the burnrate CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/burnrate/internal/config"
	"github.com/theirongolddev/burnrate/internal/logging"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
	"github.com/theirongolddev/burnrate/internal/store"
)

const monthLayout = "2006-01"

var (
	flagDB       string
	flagOwner    string
	flagMonth    string
	flagToday    string
	flagQuiet    bool
	flagLogLevel string
)

// Resolved once per invocation by loadRuntime.
var (
	appConfig = config.DefaultConfig()
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "burnrate",
	Short: "Agency client profitability calculator",
	Long: "Track what each retainer client earns against what the team's logged hours cost, " +
		"and flag clients projected to finish the month under a healthy margin.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagOwner, "owner", "o", "", "Owner whose records to use (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to report as YYYY-MM (default current)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Reference day as YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

// loadRuntime builds the logger and the effective config: file, then
// environment, then flags.
func loadRuntime(_ *cobra.Command, _ []string) error {
	level := flagLogLevel
	if flagQuiet {
		level = "error"
	}
	log, err := logging.New(level, true)
	if err != nil {
		return err
	}
	logger = log

	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults", zap.String("path", config.Path()), zap.Error(err))
		cfg = config.DefaultConfig()
	}
	if flagOwner != "" {
		cfg.General.Owner = flagOwner
	}
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	appConfig = cfg

	logger.Debug("runtime loaded",
		zap.String("owner", cfg.General.Owner),
		zap.String("db", cfg.DBPath()),
	)
	return nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(appConfig.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return st, nil
}

// reportDates resolves --month and --today. The month defaults to the one
// containing today.
func reportDates() (month, today time.Time, err error) {
	today = time.Now()
	if flagToday != "" {
		d, err := model.ParseDate(flagToday)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--today: %w", err)
		}
		today = d.Time
	}

	month = today
	if flagMonth != "" {
		m, err := time.Parse(monthLayout, flagMonth)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--month must be YYYY-MM: %w", err)
		}
		month = m
	}
	return month, today, nil
}

// loadReport reads the owner's records and computes the month's report.
func loadReport(ctx context.Context) (pipeline.Report, pipeline.Dataset, error) {
	month, today, err := reportDates()
	if err != nil {
		return pipeline.Report{}, pipeline.Dataset{}, err
	}

	st, err := openStore()
	if err != nil {
		return pipeline.Report{}, pipeline.Dataset{}, err
	}
	defer func() { _ = st.Close() }()

	start := time.Now()
	ds, err := pipeline.Load(ctx, st, appConfig.General.Owner)
	if err != nil {
		return pipeline.Report{}, pipeline.Dataset{}, err
	}
	logger.Debug("dataset loaded",
		zap.Int("clients", len(ds.Clients)),
		zap.Int("members", len(ds.Members)),
		zap.Int("entries", len(ds.Entries)),
		zap.Duration("took", time.Since(start)),
	)

	return pipeline.BuildReport(ds, month, today), ds, nil
}
