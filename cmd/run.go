package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"yago-sync/backend"
	"yago-sync/library"
	"yago-sync/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a long-lived synchronization session against the backend",
	Long: `Connects to the backend, loads the library, subscribes to all pushed
event streams and keeps the local state in sync until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Log.Info("Running sync session...")
		runSession()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession() {
	_, client, store := bootstrap(".")

	if err := store.Initialize(); err != nil {
		logger.Log.Fatalw("Failed to initialize library from backend", zap.Error(err))
	}
	state := store.State()
	logger.Log.Infow("Library initialized",
		zap.Int("games", len(state.Games)),
		zap.String("selected", state.SelectedGameID))

	session := backend.OpenSession(client, logger.Log)
	teardown := library.BindEvents(store, session, logger.Log)

	// Log state transitions while the session is alive.
	go func() {
		for range store.Watch() {
			s := store.State()
			logger.Log.Debugw("State changed",
				zap.Int("games", len(s.Games)),
				zap.Bool("running", s.Running),
				zap.Bool("downloading", s.Downloading))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down sync session...")
	teardown()
	session.Close()
	saveClientState(store)
	store.Close()
}
