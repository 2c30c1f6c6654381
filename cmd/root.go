package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; subcommands attach themselves in init.
var rootCmd = &cobra.Command{
	Use:   "yago-sync",
	Short: "Client-side library synchronization engine for the yago backend",
	Long: `yago-sync keeps a local, canonical view of your game/mod/profile
library in sync with the privileged yago backend process. Commands talk to
the backend over its command channel; pushed snapshot and progress events
keep the local state authoritative-fresh.`,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
