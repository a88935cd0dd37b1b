package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Manage sales deals (admin)",
}

var salesFilterStatus string

var salesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deals, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		screen := screens.NewSales(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		deals := screen.Records()
		if salesFilterStatus != "" && salesFilterStatus != "All" {
			deals = screen.Filtered(func(s crm.Sale) bool { return s.Status == salesFilterStatus })
		}

		rows := make([][]string, 0, len(deals))
		for _, s := range deals {
			rows = append(rows, []string{
				fmt.Sprint(s.ID), s.Product, money(s.Amount), s.Status, s.AssignedSalesRep, s.Date,
			})
		}
		table([]string{"ID", "PRODUCT", "AMOUNT", "STATUS", "SALES REP", "DATE"}, rows)
		return nil
	},
}

var saleDraft crm.Sale

func saleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&saleDraft.Product, "product", "", "product sold")
	cmd.Flags().Float64Var(&saleDraft.Amount, "amount", 0, "deal amount")
	cmd.Flags().StringVar(&saleDraft.Status, "status", "Proposal", "Proposal, Negotiation, Closed-Won or Closed-Lost")
	cmd.Flags().StringVar(&saleDraft.AssignedSalesRep, "rep", "", "assigned sales rep (display name)")
	cmd.Flags().StringVar(&saleDraft.Date, "date", "", "deal date (YYYY-MM-DD)")
}

var salesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a deal",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		created, err := screens.NewSales(client, sess).Submit(cmd.Context(), saleDraft, 0)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created deal #%d %s (%s)\n", created.ID, created.Product, money(created.Amount))
		return nil
	},
}

// Note: there is no delete subcommand. The deals surface is
// list/create/replace only; records are retired by closing the deal.
var salesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a deal record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		screen := screens.NewSales(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		draft, ok := screen.Find(id)
		if !ok {
			return fmt.Errorf("deal %d not found", id)
		}
		if cmd.Flags().Changed("product") {
			draft.Product, _ = cmd.Flags().GetString("product")
		}
		if cmd.Flags().Changed("amount") {
			draft.Amount, _ = cmd.Flags().GetFloat64("amount")
		}
		if cmd.Flags().Changed("status") {
			draft.Status, _ = cmd.Flags().GetString("status")
		}
		if cmd.Flags().Changed("rep") {
			draft.AssignedSalesRep, _ = cmd.Flags().GetString("rep")
		}
		if cmd.Flags().Changed("date") {
			draft.Date, _ = cmd.Flags().GetString("date")
		}

		updated, err := screen.Submit(cmd.Context(), draft, id)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated deal #%d %s\n", updated.ID, updated.Product)
		return nil
	},
}

func init() {
	salesListCmd.Flags().StringVar(&salesFilterStatus, "status", "", "show only this status")
	saleFlags(salesAddCmd)
	saleFlags(salesEditCmd)

	salesCmd.AddCommand(salesListCmd, salesAddCmd, salesEditCmd)
	rootCmd.AddCommand(salesCmd)

	navGated[salesCmd] = policy.NavSales
}
