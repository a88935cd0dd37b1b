package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/screens"
)

var (
	loginEmail    string
	loginPassword string
)

// crmctl login
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the CRM server and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := promptIfEmpty(loginEmail, "Email")
		if err != nil {
			return err
		}
		password, err := promptIfEmpty(loginPassword, "Password")
		if err != nil {
			return err
		}

		flow := screens.NewLoginFlow(client, store)
		sess, err := flow.Login(cmd.Context(), email, password)
		if errors.Is(err, api.ErrInvalidCredentials) {
			return errors.New("invalid credentials, please try again")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.FullName, sess.Role)
		return nil
	},
}

// crmctl logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := screens.NewLoginFlow(client, store).Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerRole     string
)

// crmctl register
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account (role is fixed at registration)",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := promptIfEmpty(registerName, "Full name")
		if err != nil {
			return err
		}
		email, err := promptIfEmpty(registerEmail, "Email")
		if err != nil {
			return err
		}
		password, err := promptIfEmpty(registerPassword, "Password")
		if err != nil {
			return err
		}

		flow := screens.NewLoginFlow(client, store)
		if err := flow.Register(cmd.Context(), name, email, password, crm.Role(registerRole)); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Account created. Run 'crmctl login' to sign in.")
		return nil
	},
}

// crmctl whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireSession()
		if err != nil {
			return err
		}

		label := "Sales Representative"
		if sess.Role.Normalize() == crm.RoleAdmin {
			label = "Administrator"
		}
		fmt.Printf("%s  %s (%s)\n", policy.Initials(sess.FullName), sess.FullName, label)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", "SALES", "account role: ADMIN or SALES")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)
}
