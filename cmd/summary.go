package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
)

var (
	flagSort string
	flagAsc  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly profitability summary and per-client breakdown",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringVar(&flagSort, "sort", "", "Sort clients by margin, revenue or spent (default from config)")
		c.Flags().BoolVar(&flagAsc, "asc", false, "Sort ascending")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	report, _, err := loadReport(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BURNRATE  %s", cli.FormatMonth(report.Month))))
	fmt.Println()

	if len(report.Profitabilities) == 0 {
		fmt.Println("  No active clients for owner " + appConfig.General.Owner + ".")
		fmt.Println(cli.RenderMuted("  Run `burnrate seed` for demo data or `burnrate clients add` to start."))
		return nil
	}

	fmt.Print(cli.RenderTable(summaryTable(report.Summary)))
	fmt.Println()

	sortKey := flagSort
	if sortKey == "" {
		sortKey = appConfig.General.DefaultSort
	}
	sorted := pipeline.SortProfitabilities(report.Profitabilities, pipeline.ParseSortKey(sortKey), !flagAsc)
	fmt.Print(cli.RenderTable(clientTable(sorted)))

	if names := atRiskNames(sorted); len(names) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d of %d clients at risk (projected margin under %.0f%%): %s",
			len(names), report.Summary.ClientCount, pipeline.AtRiskMarginPercent, strings.Join(names, ", "))))
	}
	return nil
}

func summaryTable(s model.MonthlySummary) cli.Table {
	return cli.Table{
		Headers: []string{"Summary", "Value"},
		Rows: [][]string{
			{"Revenue", cli.FormatCurrency(s.TotalRevenue)},
			{"Spent", cli.FormatCurrency(s.TotalSpent)},
			{"Margin", fmt.Sprintf("%s (%s)", cli.FormatCurrency(s.TotalMargin), cli.RenderMarginPercent(s.OverallMarginPercent))},
			cli.SeparatorRow,
			{"Clients", cli.FormatNumber(int64(s.ClientCount))},
			{"At risk", cli.FormatNumber(int64(s.AtRiskCount))},
		},
	}
}

func clientTable(ps []model.ClientProfitability) cli.Table {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		status := ""
		if p.IsAtRisk {
			status = "AT RISK"
		}
		rows = append(rows, []string{
			p.Client.Name,
			cli.FormatCurrency(p.Revenue),
			cli.FormatCurrency(p.Spent),
			cli.RenderMarginPercent(p.MarginPercent),
			cli.FormatHours(p.HoursLogged),
			cli.RenderBurnBar(p.BurnPercent, 10) + " " + cli.FormatPercent(p.BurnPercent),
			cli.FormatCurrency(p.ProjectedEndOfMonthSpent),
			cli.RenderMarginPercent(p.ProjectedMarginPercent),
			status,
		})
	}
	return cli.Table{
		Headers: []string{"Client", "Retainer", "Spent", "Margin", "Hours", "Burn", "Projected", "Proj. margin", ""},
		Rows:    rows,
	}
}

func atRiskNames(ps []model.ClientProfitability) []string {
	var names []string
	for _, p := range ps {
		if p.IsAtRisk {
			names = append(names, p.Client.Name)
		}
	}
	return names
}
