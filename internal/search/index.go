package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/store"
)

// SearchIndex wraps a Bleve index of restaurants.
//
// All public methods are safe for concurrent use. The mutex guards the
// index handle during rebuilds.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex // Protects index operations during rebuild
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (uses discard if nil)
}

// mappingVersion is bumped whenever buildIndexMapping changes. An index
// written under another version is discarded and rebuilt from the store.
const mappingVersion = "1"

var _ store.SearchIndexer = (*SearchIndex)(nil)

// NewSearchIndex opens the restaurant index under opts.DataPath, creating it
// when missing. A stale or unreadable index is dropped and recreated empty;
// the caller repopulates it (see SearchService.EnsureIndexed).
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &SearchIndex{
		path:   filepath.Join(opts.DataPath, "restaurants.bleve"),
		logger: logger,
	}
	versionPath := filepath.Join(opts.DataPath, "restaurants.version")

	if index, ok := s.openCurrent(versionPath); ok {
		s.index = index
		logger.Info("opened existing search index", "path", s.path)
		return s, nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return nil, fmt.Errorf("remove stale index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
		logger.Warn("failed to write search version file", "error", err)
	}
	s.index = index
	logger.Info("created new search index", "path", s.path, "mapping_version", mappingVersion)

	return s, nil
}

// openCurrent opens the on-disk index only if it exists and was built with
// the current mapping version.
func (s *SearchIndex) openCurrent(versionPath string) (bleve.Index, bool) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, false
	}

	version, err := os.ReadFile(versionPath)
	switch {
	case err != nil:
		s.logger.Info("search index has no version file, rebuilding", "new_version", mappingVersion)
		return nil, false
	case string(version) != mappingVersion:
		s.logger.Info("search index mapping changed, rebuilding",
			"old_version", string(version),
			"new_version", mappingVersion,
		)
		return nil, false
	}

	index, err := bleve.Open(s.path)
	if err != nil {
		s.logger.Warn("failed to open search index, recreating", "path", s.path, "error", err)
		return nil, false
	}
	return index, true
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexRestaurant implements store.SearchIndexer.
func (s *SearchIndex) IndexRestaurant(_ context.Context, r *domain.Restaurant) error {
	doc := RestaurantToDocument(r)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.ToMap())
}

// DeleteRestaurant implements store.SearchIndexer.
func (s *SearchIndex) DeleteRestaurant(_ context.Context, id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// indexBatchSize bounds how many documents one bleve batch commits.
const indexBatchSize = 500

// indexDocuments writes docs in batches. Callers hold s.mu.
func (s *SearchIndex) indexDocuments(docs []*RestaurantDocument) error {
	for i := 0; i < len(docs); i += indexBatchSize {
		end := min(i+indexBatchSize, len(docs))
		chunk := docs[i:end]

		batch := s.index.NewBatch()
		for _, doc := range chunk {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Reindex replaces the index contents with restaurants. It holds the
// exclusive lock, so searches block until the new index is populated.
func (s *SearchIndex) Reindex(restaurants []*domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index

	docs := make([]*RestaurantDocument, len(restaurants))
	for i, r := range restaurants {
		docs[i] = RestaurantToDocument(r)
	}
	if err := s.indexDocuments(docs); err != nil {
		return fmt.Errorf("index restaurants: %w", err)
	}

	s.logger.Info("reindexed restaurants", "count", len(docs))
	return nil
}
