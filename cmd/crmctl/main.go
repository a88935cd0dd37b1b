package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crmctl/config"
	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/session"
	"crmctl/pkg/logger"
)

// Shared application state, initialised once before any command runs.
var (
	cfg    *config.Config
	store  *session.Store
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "crmctl — terminal client for the CRM-System API",
	Long: "crmctl is a terminal client for the CRM-System server: customers, leads,\n" +
		"sales deals, tasks and purchase orders, with role-aware visibility.\n" +
		"Run 'crmctl login' first; 'crmctl sandbox' starts a local demo server.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

func initApp() error {
	if cfg != nil {
		return nil
	}

	c, err := config.Load()
	if err != nil {
		return err
	}
	cfg = c

	logger.Setup(cfg.App.LogLevel, cfg.App.LogFormat)

	store = session.NewStore(cfg.Session.File)
	client = api.New(cfg.API.BaseURL, cfg.API.Timeout, func() string {
		s, _ := store.Get()
		return s.Token
	})
	return nil
}

// navGated maps command groups to the navigation item that controls their
// visibility in help output. Hiding is cosmetic — every handler still asks
// the policy before acting.
var navGated = map[*cobra.Command]policy.NavItem{}

func hideForbiddenCommands() {
	// Best effort: an unreadable config or session just means the full
	// menu is shown; the policy still blocks execution.
	if err := initApp(); err != nil {
		return
	}

	role := crm.Role("")
	if sess, ok := store.Get(); ok {
		role = sess.Role
	}
	for cmd, item := range navGated {
		if !policy.CanViewNavItem(role, item) {
			cmd.Hidden = true
		}
	}
}

func main() {
	hideForbiddenCommands()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
