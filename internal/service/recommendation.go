package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/platelistapp/platelist-server/internal/cache"
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/metrics"
	"github.com/platelistapp/platelist-server/internal/recommend"
	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/store"
)

// candidatePoolLimit caps how many restaurants one request scores.
const candidatePoolLimit = 1000

// Searcher finds restaurants matching free text. *SearchService implements it.
type Searcher interface {
	Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error)
}

// ResultCache stores scored results between identical requests. *cache.Cache implements it.
type ResultCache interface {
	Get(key string, dest any) (bool, error)
	Set(key string, value any) error
}

// RecommendParams narrows and sizes a recommendation request.
type RecommendParams struct {
	Query   string `json:"query,omitempty"` // Free text, resolved through the search index
	City    string `json:"city,omitempty"`
	Cuisine string `json:"cuisine,omitempty"`
	OpenNow bool   `json:"open_now,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Recommendations is a scored, truncated candidate list.
type Recommendations struct {
	Items  []domain.ScoredCandidate `json:"items"`
	Model  domain.PreferenceModel   `json:"model"`
	Cached bool                     `json:"cached"`
}

// RecommendationService turns a user's log and taste into ranked suggestions.
type RecommendationService struct {
	store      store.Store
	searcher   Searcher
	cache      ResultCache
	scorer     *recommend.Scorer
	logger     *slog.Logger
	maxResults int
}

// NewRecommendationService creates a new recommendation service.
// searcher and cache may be nil; tables nil means built-in defaults.
func NewRecommendationService(
	store store.Store,
	searcher Searcher,
	resultCache ResultCache,
	tables *cuisine.Tables,
	maxResults int,
	logger *slog.Logger,
) *RecommendationService {
	if maxResults <= 0 {
		maxResults = 50
	}
	return &RecommendationService{
		store:      store,
		searcher:   searcher,
		cache:      resultCache,
		scorer:     recommend.NewScorer(tables),
		logger:     logger,
		maxResults: maxResults,
	}
}

// Recommend scores unvisited restaurants for the user. Rated items, taste and
// candidates load concurrently; identical inputs are served from cache.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, params RecommendParams) (*Recommendations, error) {
	start := time.Now()
	limit := s.limit(params.Limit)

	var (
		items      []domain.RatedItem
		taste      *domain.TasteProfile
		candidates []domain.Candidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.ListRatedItems(gctx, userID)
		if err != nil {
			return fmt.Errorf("list rated items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		taste, err = loadTaste(gctx, s.store, userID)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.candidates(gctx, userID, params)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	key, err := cache.Key(userID, items, taste, candidates, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached Recommendations
		hit, err := s.cache.Get(key, &cached)
		if err != nil {
			s.logger.Warn("recommendation cache read failed", "user_id", userID, "error", err)
		}
		metrics.RecordCacheLookup(hit)
		if hit {
			cached.Cached = true
			return &cached, nil
		}
	}

	model := recommend.BuildPreferenceModel(items)
	scored := s.scorer.Score(candidates, model, taste)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	if len(candidates) == 0 {
		s.logger.Debug("no candidates to score", "user_id", userID, "query", params.Query)
	}

	result := &Recommendations{Items: scored, Model: model}
	if s.cache != nil {
		if err := s.cache.Set(key, result); err != nil {
			s.logger.Warn("recommendation cache write failed", "user_id", userID, "error", err)
		}
	}

	metrics.RecordRecommendation(len(candidates), time.Since(start))
	s.logger.Debug("recommendations scored",
		"user_id", userID,
		"candidates", len(candidates),
		"returned", len(scored),
		"duration", time.Since(start))
	return result, nil
}

// candidates resolves the candidate pool: through the search index when the
// request carries free text, otherwise straight from the store.
func (s *RecommendationService) candidates(ctx context.Context, userID string, params RecommendParams) ([]domain.Candidate, error) {
	city := cuisine.CanonicalCity(params.City)
	cuisineName := cuisine.Canonical(params.Cuisine)

	if params.Query == "" || s.searcher == nil {
		if params.Query != "" {
			s.logger.Warn("search unavailable, ignoring query", "query", params.Query)
		}
		c, err := s.store.ListCandidates(ctx, userID, store.CandidateFilter{
			City:    city,
			Cuisine: cuisineName,
			OpenNow: params.OpenNow,
			Limit:   candidatePoolLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("list candidates: %w", err)
		}
		return c, nil
	}

	res, err := s.searcher.Search(ctx, search.SearchParams{
		Query:   params.Query,
		City:    city,
		Cuisine: cuisineName,
		Limit:   candidatePoolLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	c, err := s.store.GetCandidates(ctx, userID, res.IDs())
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if params.OpenNow {
		c = slices.DeleteFunc(c, func(x domain.Candidate) bool { return !x.IsOpenNow })
	}
	return c, nil
}

// ScoreAdHoc scores caller-supplied candidates against caller-supplied
// history, touching no storage.
func (s *RecommendationService) ScoreAdHoc(items []domain.RatedItem, candidates []domain.Candidate, taste *domain.TasteProfile) []domain.ScoredCandidate {
	if len(candidates) == 0 {
		s.logger.Debug("empty input: no candidates to score")
	}
	return s.scorer.Score(candidates, recommend.BuildPreferenceModel(items), taste)
}

func (s *RecommendationService) limit(requested int) int {
	if requested <= 0 || requested > s.maxResults {
		return s.maxResults
	}
	return requested
}
