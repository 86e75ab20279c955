package repository

import (
	"context"

	"feedreader/internal/domain/entity"
)

// ProgressFunc reports completed fetches out of the total after each batch.
type ProgressFunc func(current, total int)

type FeedRepository interface {
	// RefreshAll fetches every feed and returns the merged article
	// sequence sorted by publish time, newest first. Individual feed
	// failures contribute zero articles; the returned error only covers
	// failures of the operation as a whole.
	RefreshAll(ctx context.Context, feeds []*entity.Feed, onProgress ProgressFunc) ([]*entity.Article, error)
}
