package cmd

import (
	"fmt"
	"strings"

	"yago-sync/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy [game-id]",
	Short: "Deploy the active profile's mods and report conflicts",
	Long: `Deploys the selected game's enabled mods through the backend. When two
mods write the same content hash, the one later in the load order wins; the
resulting conflict report is printed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _, store := bootstrap(".")
		if err := store.Initialize(); err != nil {
			logger.Log.Fatalw("Failed to load library", zap.Error(err))
		}
		if len(args) == 1 {
			if err := store.SelectGame(args[0]); err != nil {
				logger.Log.Fatalw("Unknown game", zap.String("gameId", args[0]), zap.Error(err))
			}
		}

		if err := store.Deploy(); err != nil {
			logger.Log.Fatalw("Deployment failed", zap.Error(err))
		}

		report := store.State().Conflicts
		if report.Empty() {
			fmt.Println("Deployed with no conflicts.")
			return
		}

		fmt.Printf("Deployed with %d conflicting hashes:\n", report.Len())
		for _, hash := range report.Hashes() {
			winner, _ := report.Winner(hash)
			fmt.Printf("  %s: %s wins", hash, winner)
			if losers := report.Losers(hash); len(losers) > 0 {
				fmt.Printf(" (overwrote %s)", strings.Join(losers, ", "))
			}
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
}
