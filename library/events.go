package library

import (
	"encoding/json"

	"go.uber.org/zap"

	"yago-sync/backend"
)

// Listener is the subscription half of the event channel. *backend.Session
// satisfies it.
type Listener interface {
	Listen(event string, handler backend.EventHandler) backend.UnlistenFunc
}

// BindEvents subscribes the store to every backend event stream and returns
// a teardown function that disposes all subscriptions together, each exactly
// once. A malformed payload is fatal to that one message only: it is logged
// and dropped.
func BindEvents(store *Store, listener Listener, log *zap.SugaredLogger) func() {
	decodeErr := func(event string, err error) {
		log.Warnw("Dropping malformed event payload",
			zap.String("event", event), zap.Error(err))
	}

	unlistens := []backend.UnlistenFunc{
		listener.Listen(backend.EventLibraryUpdated, func(raw json.RawMessage) {
			var payload map[string]backend.LibraryDatabase
			if err := json.Unmarshal(raw, &payload); err != nil {
				decodeErr(backend.EventLibraryUpdated, err)
				return
			}
			store.ApplySnapshot(payload)
		}),
		listener.Listen(backend.EventDownloadProgress, func(raw json.RawMessage) {
			var p backend.DownloadProgress
			if err := json.Unmarshal(raw, &p); err != nil {
				decodeErr(backend.EventDownloadProgress, err)
				return
			}
			store.HandleDownloadProgress(p)
		}),
		listener.Listen(backend.EventDownloadComplete, func(raw json.RawMessage) {
			var gameID string
			if err := json.Unmarshal(raw, &gameID); err != nil {
				decodeErr(backend.EventDownloadComplete, err)
				return
			}
			store.HandleDownloadComplete(gameID)
		}),
		listener.Listen(backend.EventDownloadError, func(raw json.RawMessage) {
			var message string
			if err := json.Unmarshal(raw, &message); err != nil {
				decodeErr(backend.EventDownloadError, err)
				return
			}
			store.HandleDownloadError(message)
		}),
		listener.Listen(backend.EventLoaderProgress, func(raw json.RawMessage) {
			var p backend.LoaderProgress
			if err := json.Unmarshal(raw, &p); err != nil {
				decodeErr(backend.EventLoaderProgress, err)
				return
			}
			store.HandleLoaderProgress(p)
		}),
		listener.Listen(backend.EventProtonProgress, func(raw json.RawMessage) {
			var p backend.ProtonProgress
			if err := json.Unmarshal(raw, &p); err != nil {
				decodeErr(backend.EventProtonProgress, err)
				return
			}
			store.HandleProtonProgress(p)
		}),
		listener.Listen(backend.EventGameStarted, func(json.RawMessage) {
			store.HandleGameStarted()
		}),
		listener.Listen(backend.EventGameStopped, func(json.RawMessage) {
			store.HandleGameStopped()
		}),
		listener.Listen(backend.EventLaunchStatus, func(raw json.RawMessage) {
			var status string
			if err := json.Unmarshal(raw, &status); err != nil {
				decodeErr(backend.EventLaunchStatus, err)
				return
			}
			store.HandleLaunchStatus(status)
		}),
		listener.Listen(backend.EventPanicTriggered, func(json.RawMessage) {
			store.HandlePanic()
		}),
	}

	return func() {
		for _, unlisten := range unlistens {
			unlisten()
		}
	}
}
