package store

import (
	"context"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// SearchIndexer keeps the discovery index in sync with stored restaurants.
// Store implementations call it after successful writes.
type SearchIndexer interface {
	IndexRestaurant(ctx context.Context, r *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id string) error
}

// NoopSearchIndexer is a no-op implementation of SearchIndexer for testing.
type NoopSearchIndexer struct{}

// IndexRestaurant implements SearchIndexer.
func (NoopSearchIndexer) IndexRestaurant(_ context.Context, _ *domain.Restaurant) error { return nil }

// DeleteRestaurant implements SearchIndexer.
func (NoopSearchIndexer) DeleteRestaurant(_ context.Context, _ string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
