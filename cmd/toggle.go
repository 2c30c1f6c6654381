package cmd

import (
	"fmt"

	"yago-sync/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle <game-id> <mod-id>",
	Short: "Enable or disable a mod in the active profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		enable, _ := cmd.Flags().GetBool("enable")

		_, _, store := bootstrap(".")
		if err := store.Initialize(); err != nil {
			logger.Log.Fatalw("Failed to load library", zap.Error(err))
		}

		if err := store.ToggleMod(args[0], args[1], enable); err != nil {
			logger.Log.Fatalw("Toggle mod failed",
				zap.String("gameId", args[0]),
				zap.String("modId", args[1]),
				zap.Error(err))
		}
		fmt.Printf("Mod %s %s for game %s\n", args[1], enabledWord(enable), args[0])
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	toggleCmd.Flags().BoolP("enable", "e", true, "Enable the mod (use --enable=false to disable)")
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
