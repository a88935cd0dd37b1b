package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Manage sales leads (admin)",
}

var leadsFilterStatus string

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, optionally filtered by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		screen := screens.NewLeads(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		// Status filtering is local; the list was already fetched.
		leads := screen.Records()
		if leadsFilterStatus != "" && leadsFilterStatus != "All" {
			leads = screen.Filtered(func(l crm.Lead) bool { return l.Status == leadsFilterStatus })
		}

		rows := make([][]string, 0, len(leads))
		for _, l := range leads {
			rows = append(rows, []string{
				fmt.Sprint(l.ID), l.Name, l.ContactInfo, l.Source, l.Status, l.AssignedSalesRep,
			})
		}
		table([]string{"ID", "NAME", "CONTACT", "SOURCE", "STATUS", "SALES REP"}, rows)
		return nil
	},
}

var leadDraft crm.Lead

func leadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&leadDraft.Name, "name", "", "lead name")
	cmd.Flags().StringVar(&leadDraft.ContactInfo, "contact", "", "email or phone")
	cmd.Flags().StringVar(&leadDraft.Source, "source", "Web", "Referral, Ads or Web")
	cmd.Flags().StringVar(&leadDraft.Status, "status", "New", "New, Contacted, Converted or Lost")
	cmd.Flags().StringVar(&leadDraft.AssignedSalesRep, "rep", "", "assigned sales rep (display name)")
}

var leadsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a lead",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		created, err := screens.NewLeads(client, sess).Submit(cmd.Context(), leadDraft, 0)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created lead #%d %s\n", created.ID, created.Name)
		return nil
	},
}

var leadsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a lead record",
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

		screen := screens.NewLeads(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		draft, ok := screen.Find(id)
		if !ok {
			return fmt.Errorf("lead %d not found", id)
		}
		set := map[string]*string{
			"name": &draft.Name, "contact": &draft.ContactInfo,
			"source": &draft.Source, "status": &draft.Status, "rep": &draft.AssignedSalesRep,
		}
		for flag, field := range set {
			if cmd.Flags().Changed(flag) {
				*field, _ = cmd.Flags().GetString(flag)
			}
		}

		updated, err := screen.Submit(cmd.Context(), draft, id)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated lead #%d %s\n", updated.ID, updated.Name)
		return nil
	},
}

var leadsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lead",
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

		screen := screens.NewLeads(client, sess)
		if err := screen.Load(cmd.Context()); err != nil {
			return friendlyError(err)
		}

		err = screen.Delete(cmd.Context(), id, func() bool {
			return confirm(fmt.Sprintf("Delete lead %d?", id))
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Deleted lead #%d\n", id)
		return nil
	},
}

func init() {
	leadsListCmd.Flags().StringVar(&leadsFilterStatus, "status", "", "show only this status")
	leadFlags(leadsAddCmd)
	leadFlags(leadsEditCmd)

	leadsCmd.AddCommand(leadsListCmd, leadsAddCmd, leadsEditCmd, leadsDeleteCmd)
	rootCmd.AddCommand(leadsCmd)

	navGated[leadsCmd] = policy.NavLeads
}
