package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/burnrate/internal/cli"
	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/store"
)

var flagMemberRate string

var teamCmd = &cobra.Command{
	Use:     "team",
	Aliases: []string{"members"},
	Short:   "Manage team members and their hourly cost",
	RunE:    runTeamList,
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members",
	Args:  cobra.NoArgs,
	RunE:  runTeamList,
}

var teamAddCmd = &cobra.Command{
	Use:   "add NAME --rate COST_PER_HOUR",
	Short: "Add a team member",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamAdd,
}

var teamRmCmd = &cobra.Command{
	Use:   "rm MEMBER",
	Short: "Delete a team member (time entries are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamRm,
}

func init() {
	teamAddCmd.Flags().StringVarP(&flagMemberRate, "rate", "r", "", "Blended hourly cost to the agency, e.g. 65")
	_ = teamAddCmd.MarkFlagRequired("rate")

	teamCmd.AddCommand(teamListCmd, teamAddCmd, teamRmCmd)
	rootCmd.AddCommand(teamCmd)
}

func findMember(ctx context.Context, st *store.Store, ref string) (model.TeamMember, error) {
	members, err := st.ListTeamMembers(ctx, appConfig.General.Owner)
	if err != nil {
		return model.TeamMember{}, err
	}
	m, err := resolveRef(members, ref,
		func(m model.TeamMember) string { return m.ID },
		func(m model.TeamMember) string { return m.Name })
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("team member %w", err)
	}
	return m, nil
}

func runTeamList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	members, err := st.ListTeamMembers(cmd.Context(), appConfig.General.Owner)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Println("  No team members. Add one with `burnrate team add NAME --rate COST`.")
		return nil
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{m.Name, cli.FormatCurrency(m.CostRate) + "/h", shortID(m.ID)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Team",
		Headers: []string{"Name", "Cost", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runTeamAdd(cmd *cobra.Command, args []string) error {
	rate, err := parseMoney(flagMemberRate)
	if err != nil {
		return fmt.Errorf("--rate: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	m, err := st.SaveTeamMember(cmd.Context(), model.TeamMember{
		OwnerID:  appConfig.General.Owner,
		Name:     args[0],
		CostRate: rate,
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("adding team member: %w", err)
	}
	logger.Info("team member added", zap.String("id", m.ID))
	fmt.Printf("  Added %s at %s/h %s\n", m.Name, cli.FormatCurrency(m.CostRate), shortID(m.ID))
	return nil
}

func runTeamRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	m, err := findMember(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteTeamMember(cmd.Context(), m.OwnerID, m.ID); err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}
	fmt.Printf("  Deleted %s. Their logged hours no longer count toward spend.\n", m.Name)
	return nil
}
