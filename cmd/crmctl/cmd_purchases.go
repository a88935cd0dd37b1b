package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

// purchases is create-only: the upstream surface has no list, edit or
// delete for purchase orders.
var purchasesCmd = &cobra.Command{
	Use:   "purchases",
	Short: "Record purchase orders (admin)",
}

var purchaseDraft crm.Purchase

var purchasesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a purchase",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		err = screens.NewPurchaseForm(client, sess).Submit(cmd.Context(), purchaseDraft)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Recorded purchase from %s (%s)\n", purchaseDraft.Vendor, money(purchaseDraft.Amount))
		return nil
	},
}

func init() {
	purchasesAddCmd.Flags().StringVar(&purchaseDraft.Vendor, "vendor", "", "vendor name")
	purchasesAddCmd.Flags().Float64Var(&purchaseDraft.Amount, "amount", 0, "purchase amount")

	purchasesCmd.AddCommand(purchasesAddCmd)
	rootCmd.AddCommand(purchasesCmd)

	navGated[purchasesCmd] = policy.NavPurchases
}
