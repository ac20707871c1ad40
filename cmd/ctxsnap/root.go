package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ctxsnap",
		Short:        "Save and restore the context of unfinished work",
		Long:         "ctxsnap stores context snapshots in SQLite and serves them over a REST API, a web UI and MCP.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// A missing .env file is fine.
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().String("config", "", "YAML config file (overrides CTXSNAP_CONFIG_PATH)")

	root.AddCommand(newServeCmd(), newMCPCmd(), newSeedCmd())
	return root
}
