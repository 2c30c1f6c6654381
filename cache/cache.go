// Package cache persists the last-known client state across restarts. The
// cache is opaque seed data: whatever it holds is replaced by the first
// authoritative snapshot after startup.
package cache

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Save upserts the default slot with the given state.
func Save(state ClientState) error {
	state.Slot = defaultSlot
	err := DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_game_id", "stream_safe", "nsfw_behavior", "close_on_launch",
		}),
	}).Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to save client state: %w", err)
	}
	return nil
}

// Load returns the persisted state, or nil when nothing was saved yet.
func Load() (*ClientState, error) {
	var state ClientState
	err := DB.Where("slot = ?", defaultSlot).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client state: %w", err)
	}
	return &state, nil
}
