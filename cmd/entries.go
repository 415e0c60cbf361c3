package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
)

const unknownName = "Unknown"

var (
	flagEntryClient string
	flagEntryMember string
	flagEntryHours  string
	flagEntryDate   string
	flagEntryNote   string
)

var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"entry", "time"},
	Short:   "Log and review time entries",
	RunE:    runEntriesList,
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time entries grouped by month",
	Args:  cobra.NoArgs,
	RunE:  runEntriesList,
}

var entriesAddCmd = &cobra.Command{
	Use:   "add --client CLIENT --member MEMBER --hours HOURS",
	Short: "Log hours against a client",
	Args:  cobra.NoArgs,
	RunE:  runEntriesAdd,
}

var entriesRmCmd = &cobra.Command{
	Use:   "rm ENTRY_ID",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesRm,
}

func init() {
	for _, c := range []*cobra.Command{entriesCmd, entriesListCmd} {
		c.Flags().StringVarP(&flagEntryClient, "client", "c", "", "Only entries for this client")
		c.Flags().StringVar(&flagEntryMember, "member", "", "Only entries by this team member")
	}

	entriesAddCmd.Flags().StringVarP(&flagEntryClient, "client", "c", "", "Client ID, ID prefix or name")
	entriesAddCmd.Flags().StringVar(&flagEntryMember, "member", "", "Team member ID, ID prefix or name")
	entriesAddCmd.Flags().StringVar(&flagEntryHours, "hours", "", "Hours worked, e.g. 2.5")
	entriesAddCmd.Flags().StringVar(&flagEntryDate, "date", "", "Day worked as YYYY-MM-DD (default --today)")
	entriesAddCmd.Flags().StringVar(&flagEntryNote, "note", "", "What the time was spent on")
	for _, f := range []string{"client", "member", "hours"} {
		_ = entriesAddCmd.MarkFlagRequired(f)
	}

	entriesCmd.AddCommand(entriesListCmd, entriesAddCmd, entriesRmCmd)
	rootCmd.AddCommand(entriesCmd)
}

func runEntriesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	month, _, err := reportDates()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ds, err := pipeline.Load(ctx, st, appConfig.General.Owner)
	if err != nil {
		return err
	}

	var clientID, memberID string
	if flagEntryClient != "" {
		c, err := findClient(ctx, st, flagEntryClient)
		if err != nil {
			return err
		}
		clientID = c.ID
	}
	if flagEntryMember != "" {
		m, err := findMember(ctx, st, flagEntryMember)
		if err != nil {
			return err
		}
		memberID = m.ID
	}

	clients := make(map[string]model.Client, len(ds.Clients))
	for _, c := range ds.Clients {
		clients[c.ID] = c
	}
	members := make(map[string]model.TeamMember, len(ds.Members))
	for _, m := range ds.Members {
		members[m.ID] = m
	}

	hours, cost := pipeline.MonthActivity(ds.Entries, ds.Members, month)
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TIME ENTRIES  %s: %s · %s",
		cli.FormatMonth(month), cli.FormatHours(hours), cli.FormatCurrency(cost))))
	fmt.Println()

	groups := pipeline.GroupEntriesByMonth(pipeline.FilterEntries(ds.Entries, clientID, memberID))
	if len(groups) == 0 {
		fmt.Println("  No time entries. Log one with `burnrate entries add`.")
		return nil
	}

	for _, g := range groups {
		rows := make([][]string, 0, len(g.Entries))
		for _, e := range g.Entries {
			clientName, memberName, entryCost := unknownName, unknownName, "-"
			if c, ok := clients[e.ClientID]; ok {
				clientName = c.Name
			}
			if m, ok := members[e.TeamMemberID]; ok {
				memberName = m.Name
				entryCost = cli.FormatCurrency(e.Hours * m.CostRate)
			}
			rows = append(rows, []string{
				cli.FormatDate(e.Date), clientName, memberName,
				cli.FormatHours(e.Hours), entryCost, e.Note, shortID(e.ID),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("%s  %s", cli.FormatMonthKey(g.Month), cli.FormatHours(g.Hours)),
			Headers: []string{"Date", "Client", "Member", "Hours", "Cost", "Note", "ID"},
			Rows:    rows,
		}))
		fmt.Println()
	}
	return nil
}

func runEntriesAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	hours, err := parseHours(flagEntryHours)
	if err != nil {
		return fmt.Errorf("--hours: %w", err)
	}

	_, today, err := reportDates()
	if err != nil {
		return err
	}
	date := model.DateOf(today)
	if flagEntryDate != "" {
		if date, err = model.ParseDate(flagEntryDate); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := findClient(ctx, st, flagEntryClient)
	if err != nil {
		return err
	}
	m, err := findMember(ctx, st, flagEntryMember)
	if err != nil {
		return err
	}

	e, err := st.SaveTimeEntry(ctx, model.TimeEntry{
		OwnerID:      appConfig.General.Owner,
		ClientID:     c.ID,
		TeamMemberID: m.ID,
		Date:         date,
		Hours:        hours,
		Note:         flagEntryNote,
	})
	if err != nil {
		return fmt.Errorf("logging time: %w", err)
	}
	logger.Info("time entry added", zap.String("id", e.ID), zap.Time("date", e.Date.Time))
	fmt.Printf("  Logged %s for %s by %s on %s (%s)\n",
		cli.FormatHours(e.Hours), c.Name, m.Name, cli.FormatDate(e.Date),
		cli.FormatCurrency(e.Hours*m.CostRate))
	return nil
}

func runEntriesRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entries, err := st.ListTimeEntries(cmd.Context(), appConfig.General.Owner)
	if err != nil {
		return err
	}
	e, err := resolveRef(entries, args[0],
		func(e model.TimeEntry) string { return e.ID },
		func(model.TimeEntry) string { return "" })
	if err != nil {
		return fmt.Errorf("time entry %w", err)
	}
	if err := st.DeleteTimeEntry(cmd.Context(), e.OwnerID, e.ID); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	fmt.Printf("  Deleted %s entry from %s\n", cli.FormatHours(e.Hours), cli.FormatDate(e.Date))
	return nil
}

