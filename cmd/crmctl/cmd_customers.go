package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customer accounts (admin)",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		screen := screens.NewCustomers(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		rows := make([][]string, 0, len(screen.Records()))
		for _, c := range screen.Records() {
			rows = append(rows, []string{
				fmt.Sprint(c.ID), c.Name, c.Company, c.Email, c.Phone, c.AssignedSalesRep, c.Status,
			})
		}
		table([]string{"ID", "NAME", "COMPANY", "EMAIL", "PHONE", "SALES REP", "STATUS"}, rows)
		return nil
	},
}

var customerDraft crm.Customer

func customerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&customerDraft.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&customerDraft.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&customerDraft.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&customerDraft.Company, "company", "", "company name")
	cmd.Flags().StringVar(&customerDraft.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&customerDraft.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&customerDraft.AssignedSalesRep, "rep", "", "assigned sales rep (display name)")
	cmd.Flags().StringVar(&customerDraft.Status, "status", "Active", "Active or Inactive")
}

var customersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		screen := screens.NewCustomers(client, sess)
		created, err := screen.Submit(cmd.Context(), customerDraft, 0)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created customer #%d %s\n", created.ID, created.Name)
		return nil
	},
}

var customersEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a customer record",
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

		screen := screens.NewCustomers(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		// Seed the draft from the current record; flags override fields.
		draft, ok := screen.Find(id)
		if !ok {
			return fmt.Errorf("customer %d not found", id)
		}
		applyCustomerFlags(cmd, &draft)

		updated, err := screen.Submit(cmd.Context(), draft, id)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated customer #%d %s\n", updated.ID, updated.Name)
		return nil
	},
}

func applyCustomerFlags(cmd *cobra.Command, draft *crm.Customer) {
	set := map[string]*string{
		"name": &draft.Name, "email": &draft.Email, "phone": &draft.Phone,
		"company": &draft.Company, "address": &draft.Address, "notes": &draft.Notes,
		"rep": &draft.AssignedSalesRep, "status": &draft.Status,
	}
	for flag, field := range set {
		if cmd.Flags().Changed(flag) {
			*field, _ = cmd.Flags().GetString(flag)
		}
	}
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer",
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

		screen := screens.NewCustomers(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		err = screen.Delete(cmd.Context(), id, func() bool {
			return confirm(fmt.Sprintf("Delete customer %d?", id))
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Deleted customer #%d\n", id)
		return nil
	},
}

func init() {
	customerFlags(customersAddCmd)
	customerFlags(customersEditCmd)

	customersCmd.AddCommand(customersListCmd, customersAddCmd, customersEditCmd, customersDeleteCmd)
	rootCmd.AddCommand(customersCmd)

	navGated[customersCmd] = policy.NavCustomers
}
