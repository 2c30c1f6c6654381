package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"yago-sync/library"
	"yago-sync/loadorder"
	"yago-sync/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Show the current game/mod/profile library",
	Long: `Fetches the library from the backend and prints every game with its
profiles and mods. Stream-safe mode filters sensitive mods from the output.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _, store := bootstrap(".")
		if err := store.Initialize(); err != nil {
			logger.Log.Fatalw("Failed to load library", zap.Error(err))
		}
		printLibrary(store.State())
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}

func printLibrary(state library.State) {
	if len(state.Games) == 0 {
		fmt.Println("Library is empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, game := range state.Games {
		marker := " "
		if game.ID == state.SelectedGameID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", marker, game.Name, game.ID, game.Status, game.Version)

		for _, profile := range game.Profiles {
			active := ""
			if profile.ID == game.ActiveProfileID {
				active = " (active)"
			}
			fmt.Fprintf(w, "    profile\t%s%s\t%d mods enabled\t\n",
				profile.Name, active, len(profile.EnabledModIDs))
		}

		if profile, ok := game.ActiveProfile(); ok {
			ids := make([]string, 0, len(game.Mods))
			for id := range game.Mods {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range loadorder.Sort(ids, profile.LoadOrder) {
				mod := game.Mods[id]
				if shouldHideMod(mod, state.StreamSafe, state.NSFWBehavior) {
					continue
				}
				enabled := "disabled"
				if mod.Enabled {
					enabled = "enabled"
				}
				fmt.Fprintf(w, "    mod\t%s\t%s\t%s\n",
					displayModName(mod, state.StreamSafe, state.NSFWBehavior), mod.Version, enabled)
			}
		}
	}
	w.Flush()
}
