package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/store"
)

// SearchService bridges the restaurant search index and the store.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a restaurant search.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// ReindexAll rebuilds the index from every stored restaurant.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	restaurants, err := s.store.ListAllRestaurants(ctx)
	if err != nil {
		return fmt.Errorf("list restaurants: %w", err)
	}

	if err := s.index.Reindex(restaurants); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	s.logger.Info("search index rebuilt", "restaurants", len(restaurants))
	return nil
}

// EnsureIndexed rebuilds the index when it is empty but the store is not,
// e.g. after a mapping version bump or a deleted index directory.
func (s *SearchService) EnsureIndexed(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.ReindexAll(ctx)
}

// DocumentCount returns the number of indexed restaurants.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
