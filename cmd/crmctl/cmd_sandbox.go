package main

import (
	"github.com/spf13/cobra"

	"crmctl/internal/sandbox"
	"crmctl/pkg/logger"
)

// sandbox runs a local stand-in for the CRM backend, useful for demos
// and for developing against a clean database. It speaks the same REST
// contract the real server does, including the token endpoints.
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local CRM API server with seeded demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sandbox.OpenStore(cfg.Sandbox.DBDriver, cfg.Sandbox.DBDSN)
		if err != nil {
			return err
		}

		srv := sandbox.New(store, cfg.Sandbox.JWTSecret)
		if err := srv.Seed(); err != nil {
			return err
		}

		logger.L.Info().
			Str("addr", cfg.Sandbox.Addr).
			Str("driver", cfg.Sandbox.DBDriver).
			Msg("sandbox listening")
		logger.L.Info().Msg("demo logins: admin@crm.local/admin123, bob@crm.local/bob123")

		return srv.ListenAndServe(cfg.Sandbox.Addr)
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}
