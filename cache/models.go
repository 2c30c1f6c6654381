package cache

import (
	"gorm.io/gorm"
)

// ClientState is the persisted last-known client state. One row per slot;
// only the default slot is used today. It seeds the store at startup and is
// superseded by the first backend snapshot.
type ClientState struct {
	gorm.Model
	Slot           string `gorm:"uniqueIndex"`
	SelectedGameID string
	StreamSafe     bool
	NSFWBehavior   string
	CloseOnLaunch  bool
}

const defaultSlot = "default"
