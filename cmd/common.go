package cmd

import (
	"fmt"

	"yago-sync/backend"
	"yago-sync/cache"
	"yago-sync/config"
	"yago-sync/library"
	"yago-sync/logger"

	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, *backend.Client, *library.Store) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	cache.InitDatabase(cfg.CachePath)
	logger.Log.Infow("Cache database initialized", zap.String("path", cfg.CachePath))

	client, err := backend.NewClient(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to create backend client", zap.Error(err))
	}

	store := library.New(client, logger.Log)

	if state, err := cache.Load(); err != nil {
		logger.Log.Warnw("Failed to load cached client state", zap.Error(err))
	} else if state != nil {
		store.SeedFromCache(state.SelectedGameID, state.StreamSafe, state.NSFWBehavior, state.CloseOnLaunch)
	}

	return cfg, client, store
}

// saveClientState persists the store's seedable state for the next start.
func saveClientState(store *library.Store) {
	state := store.State()
	err := cache.Save(cache.ClientState{
		SelectedGameID: state.SelectedGameID,
		StreamSafe:     state.StreamSafe,
		NSFWBehavior:   state.NSFWBehavior,
		CloseOnLaunch:  state.CloseOnLaunch,
	})
	if err != nil {
		logger.Log.Warnw("Failed to persist client state", zap.Error(err))
	}
}

// displayModName applies stream-safe filtering to a mod name for terminal
// output. Blur redacts the name, hide drops the mod from listings entirely
// (callers check shouldHideMod first).
func displayModName(mod library.Mod, streamSafe bool, behavior string) string {
	if streamSafe && library.IsNSFW(mod.Tags) && behavior == "blur" {
		return fmt.Sprintf("%s (hidden)", mod.ID[:min(8, len(mod.ID))])
	}
	return mod.Name
}

// shouldHideMod reports whether stream-safe mode removes a mod from listings.
func shouldHideMod(mod library.Mod, streamSafe bool, behavior string) bool {
	return streamSafe && behavior == "hide" && library.IsNSFW(mod.Tags)
}
