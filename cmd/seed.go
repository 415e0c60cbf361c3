package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo clients, team members and this month's time entries",
	Long: "Writes three demo clients, three team members and 21 time entries dated in the " +
		"current month for the selected owner. Running it twice writes a second copy.",
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, today, err := reportDates()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	start := time.Now()
	ds, err := seed.Seed(cmd.Context(), st, appConfig.General.Owner, today)
	if err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}
	logger.Debug("seeded", zap.Duration("took", time.Since(start)))

	fmt.Printf("  Seeded %d clients, %d team members and %d time entries for %s\n",
		len(ds.Clients), len(ds.Members), len(ds.Entries), appConfig.General.Owner)
	fmt.Println(cli.RenderMuted("  Run `burnrate` to see the summary."))
	return nil
}
