package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

// crmctl dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the role-appropriate overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		summary, err := screens.NewDashboard(client, sess).Load(cmd.Context())
		if err != nil {
			return friendlyError(err)
		}

		if sess.Role.Normalize() == crm.RoleAdmin {
			fmt.Println("Dashboard Overview")
		} else {
			fmt.Printf("My Dashboard — %s\n", sess.FullName)
		}

		if summary.Stats != nil {
			fmt.Printf("\nTotal revenue: %s across %d deals\n",
				money(summary.Stats.TotalRevenue), summary.Stats.TotalSales)
		}

		fmt.Printf("\nTasks: %d total, %d pending, %d completed\n\n",
			len(summary.Tasks), len(summary.Pending), len(summary.Completed))

		if len(summary.Pending) == 0 {
			fmt.Println("No pending tasks.")
			return nil
		}

		rows := make([][]string, 0, len(summary.Pending))
		for _, t := range summary.Pending {
			rows = append(rows, []string{
				fmt.Sprint(t.ID), t.Title, t.Priority, t.DueDate, t.AssignedTo, t.Status,
			})
		}
		table([]string{"ID", "TITLE", "PRIORITY", "DUE", "ASSIGNED TO", "STATUS"}, rows)
		return nil
	},
}

// crmctl report profit
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Business reports",
}

var reportProfitCmd = &cobra.Command{
	Use:   "profit",
	Short: "Show total sales, purchases and profit",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}
		if !policy.CanViewNavItem(sess.Role, policy.NavSales) {
			return friendlyError(screens.ErrForbidden)
		}

		report, err := client.ProfitReport(cmd.Context())
		if err != nil {
			return friendlyError(err)
		}

		table([]string{"TOTAL SALES", "TOTAL PURCHASES", "PROFIT"}, [][]string{{
			money(report.TotalSales), money(report.TotalPurchases), money(report.Profit),
		}})
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportProfitCmd)
	rootCmd.AddCommand(dashboardCmd, reportCmd)

	navGated[reportCmd] = policy.NavSales
}
