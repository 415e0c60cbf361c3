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

var (
	flagClientRetainer string
	flagClientColor    string
	flagClientName     string
	flagClientActive   bool
	flagClientAll      bool
)

var clientsCmd = &cobra.Command{
	Use:     "clients",
	Aliases: []string{"client"},
	Short:   "Manage retainer clients",
	RunE:    runClientsList,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE:  runClientsList,
}

var clientsAddCmd = &cobra.Command{
	Use:   "add NAME --retainer AMOUNT",
	Short: "Add a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsAdd,
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update CLIENT",
	Short: "Change a client's name, retainer, color or active flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsUpdate,
}

var clientsArchiveCmd = &cobra.Command{
	Use:   "archive CLIENT",
	Short: "Mark a client inactive, keeping its time entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsArchive,
}

var clientsRmCmd = &cobra.Command{
	Use:   "rm CLIENT",
	Short: "Delete a client (time entries are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientsRm,
}

func init() {
	clientsListCmd.Flags().BoolVarP(&flagClientAll, "all", "a", false, "Include archived clients")
	clientsCmd.Flags().BoolVarP(&flagClientAll, "all", "a", false, "Include archived clients")

	clientsAddCmd.Flags().StringVarP(&flagClientRetainer, "retainer", "r", "", "Monthly retainer, e.g. 8000 or $8,000")
	clientsAddCmd.Flags().StringVar(&flagClientColor, "color", "", "Display color, e.g. #6366f1")
	_ = clientsAddCmd.MarkFlagRequired("retainer")

	clientsUpdateCmd.Flags().StringVar(&flagClientName, "name", "", "New name")
	clientsUpdateCmd.Flags().StringVarP(&flagClientRetainer, "retainer", "r", "", "New monthly retainer")
	clientsUpdateCmd.Flags().StringVar(&flagClientColor, "color", "", "New display color")
	clientsUpdateCmd.Flags().BoolVar(&flagClientActive, "active", true, "Set the active flag")

	clientsCmd.AddCommand(clientsListCmd, clientsAddCmd, clientsUpdateCmd, clientsArchiveCmd, clientsRmCmd)
	rootCmd.AddCommand(clientsCmd)
}

// findClient resolves a client by ID, ID prefix or name.
func findClient(ctx context.Context, st *store.Store, ref string) (model.Client, error) {
	clients, err := st.ListClients(ctx, appConfig.General.Owner)
	if err != nil {
		return model.Client{}, err
	}
	c, err := resolveRef(clients, ref,
		func(c model.Client) string { return c.ID },
		func(c model.Client) string { return c.Name })
	if err != nil {
		return model.Client{}, fmt.Errorf("client %w", err)
	}
	return c, nil
}

func runClientsList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	clients, err := st.ListClients(cmd.Context(), appConfig.General.Owner)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, c := range clients {
		if !c.IsActive && !flagClientAll {
			continue
		}
		status := "active"
		if !c.IsActive {
			status = "archived"
		}
		rows = append(rows, []string{c.Name, cli.FormatCurrency(c.MonthlyRetainer), status, c.Color, shortID(c.ID)})
	}

	if len(rows) == 0 {
		fmt.Println("  No clients. Add one with `burnrate clients add NAME --retainer AMOUNT`.")
		return nil
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Clients",
		Headers: []string{"Name", "Retainer", "Status", "Color", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runClientsAdd(cmd *cobra.Command, args []string) error {
	retainer, err := parseMoney(flagClientRetainer)
	if err != nil {
		return fmt.Errorf("--retainer: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := st.SaveClient(cmd.Context(), model.Client{
		OwnerID:         appConfig.General.Owner,
		Name:            args[0],
		MonthlyRetainer: retainer,
		Color:           flagClientColor,
		IsActive:        true,
	})
	if err != nil {
		return fmt.Errorf("adding client: %w", err)
	}
	logger.Info("client added", zap.String("id", c.ID), zap.String("owner", c.OwnerID))
	fmt.Printf("  Added %s (%s/month) %s\n", c.Name, cli.FormatCurrency(c.MonthlyRetainer), shortID(c.ID))
	return nil
}

func runClientsUpdate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := findClient(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		c.Name = flagClientName
	}
	if flags.Changed("retainer") {
		if c.MonthlyRetainer, err = parseMoney(flagClientRetainer); err != nil {
			return fmt.Errorf("--retainer: %w", err)
		}
	}
	if flags.Changed("color") {
		c.Color = flagClientColor
	}
	if flags.Changed("active") {
		c.IsActive = flagClientActive
	}

	if c, err = st.SaveClient(cmd.Context(), c); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	fmt.Printf("  Updated %s (%s/month)\n", c.Name, cli.FormatCurrency(c.MonthlyRetainer))
	return nil
}

func runClientsArchive(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := findClient(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	c.IsActive = false
	if _, err := st.SaveClient(cmd.Context(), c); err != nil {
		return fmt.Errorf("archiving client: %w", err)
	}
	fmt.Printf("  Archived %s\n", c.Name)
	return nil
}

func runClientsRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c, err := findClient(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteClient(cmd.Context(), c.OwnerID, c.ID); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	fmt.Printf("  Deleted %s. Its time entries now show as Unknown.\n", c.Name)
	return nil
}
