package repository

import (
	"context"

	"feedreader/internal/domain/entity"
)

// StateRepository persists read/starred article ids and user preferences.
// The store has no in-process cache; every call re-reads the backing store.
// Writes swallow storage failures with a diagnostic so callers can proceed
// with their in-memory state, and reads degrade to empty sets or defaults.
type StateRepository interface {
	ReadIDs(ctx context.Context) map[string]struct{}
	MarkRead(ctx context.Context, articleID string)
	MarkAllRead(ctx context.Context, articleIDs []string)
	MarkUnread(ctx context.Context, articleID string)

	StarredIDs(ctx context.Context) map[string]struct{}
	// ToggleStarred adds the id if absent, removes it if present, and
	// returns the new starred state.
	ToggleStarred(ctx context.Context, articleID string) bool

	Preferences(ctx context.Context) entity.Preferences
	SavePreferences(ctx context.Context, patch entity.PreferencesPatch)
}
