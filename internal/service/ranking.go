package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/metrics"
	"github.com/platelistapp/platelist-server/internal/ranking"
	"github.com/platelistapp/platelist-server/internal/sse"
	"github.com/platelistapp/platelist-server/internal/store"
	"github.com/platelistapp/platelist-server/internal/validation"
)

// MoveInput describes a drag-and-drop move. View is the order of item IDs the
// client was displaying; when set, a move against a stale view is rejected.
type MoveInput struct {
	View []string
	From int
	To   int
}

// MoveResult is the outcome of an applied move.
type MoveResult struct {
	Plan           *domain.ReorderPlan `json:"plan"`
	Order          []domain.RatedItem  `json:"order"`
	RatingConflict bool                `json:"rating_conflict"`
}

// RateInput is a logged visit.
type RateInput struct {
	VisitedAt time.Time
	Rating    *float64
	Notes     string
}

// RankingService owns a user's ranked log: ordering, moves, and ratings.
type RankingService struct {
	store  store.Store
	events EventEmitter
	cache  CacheInvalidator
	logger *slog.Logger
	locks  userLocks
}

// NewRankingService creates a new ranking service. cache may be nil.
func NewRankingService(store store.Store, events EventEmitter, cache CacheInvalidator, logger *slog.Logger) *RankingService {
	if events == nil {
		events = NewNoopEmitter()
	}
	return &RankingService{
		store:  store,
		events: events,
		cache:  cache,
		logger: logger,
	}
}

// GetRanking returns the user's rated items in canonical order.
func (s *RankingService) GetRanking(ctx context.Context, userID string) ([]domain.RatedItem, error) {
	items, err := s.store.ListRatedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rated items: %w", err)
	}
	order := ranking.Order(items)
	if len(order) == 0 {
		s.logger.Debug("empty ranking", "user_id", userID)
	}
	return order, nil
}

// Bounds returns the rating interval the item at index must fall into to
// stay consistent with its neighbors.
func (s *RankingService) Bounds(ctx context.Context, userID string, index int) (ranking.Bounds, error) {
	order, err := s.GetRanking(ctx, userID)
	if err != nil {
		return ranking.Bounds{}, err
	}
	return ranking.BoundsAt(order, index)
}

// PreviewMove computes the plan for a move without persisting it.
func (s *RankingService) PreviewMove(ctx context.Context, userID string, in MoveInput) (*domain.ReorderPlan, error) {
	order, err := s.GetRanking(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plan(order, in)
	if err != nil {
		return nil, err
	}

	metrics.RecordReorder("preview", len(plan.RankUpdates), len(plan.RatingBounds) > 0)
	return plan, nil
}

// ApplyMove plans a move and persists it atomically. Stored ranks are
// rewritten to match the new order exactly, so after the first move every
// rated item carries a contiguous manual rank. Other sessions are notified
// through a ranking.reordered event.
func (s *RankingService) ApplyMove(ctx context.Context, userID string, in MoveInput) (*MoveResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	log := s.logger.With("user_id", userID, "from", in.From, "to", in.To)

	order, err := s.GetRanking(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plan(order, in)
	if err != nil {
		return nil, err
	}

	next, err := ranking.Move(order, in.From, in.To)
	if err != nil {
		return nil, err
	}

	conflict := len(plan.RatingBounds) > 0
	result := &MoveResult{Plan: plan, Order: next, RatingConflict: conflict}
	if len(plan.RankUpdates) == 0 {
		return result, nil
	}

	updates := ranking.Merge(ranking.Baseline(order), plan.RankUpdates)
	if err := s.store.ApplyRankUpdates(ctx, userID, updates); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrNotFound) {
			metrics.RecordReorder("conflict", 0, false)
			return nil, domainerrors.Conflict("ranking changed while the move was being saved").WithCause(err)
		}
		return nil, fmt.Errorf("apply rank updates: %w", err)
	}

	// Reflect the persisted ranks in the returned order.
	for i := range next {
		next[i].ManualRank = domain.Int(i + 1)
	}

	s.invalidate(userID)
	s.events.Emit(sse.NewRankingReorderedEvent(userID, plan, conflict))
	metrics.RecordReorder("applied", len(updates), conflict)

	log.Info("move applied", "plan_id", plan.ID, "rank_updates", len(updates), "rating_conflict", conflict)
	return result, nil
}

func (s *RankingService) plan(order []domain.RatedItem, in MoveInput) (*domain.ReorderPlan, error) {
	if len(in.View) > 0 && ranking.Drifted(in.View, order) {
		metrics.RecordReorder("conflict", 0, false)
		return nil, domainerrors.Conflict("ranking changed since it was loaded; refresh and retry")
	}

	plan, err := ranking.PlanMove(order, in.From, in.To)
	if err != nil {
		metrics.RecordReorder("invalid", 0, false)
		return nil, err
	}
	return plan, nil
}

// RateRestaurant logs a visit or changes its rating. A nil rating records the
// visit without placing it in the ranking.
func (s *RankingService) RateRestaurant(ctx context.Context, userID, restaurantID string, in RateInput) (*domain.Rating, error) {
	if in.Rating != nil && !validation.ValidRating(*in.Rating) {
		return nil, domainerrors.Validationf("rating %v must be between %.1f and %.1f with one decimal place",
			*in.Rating, domain.MinRating, domain.MaxRating)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	now := time.Now().UTC()
	visited := in.VisitedAt
	if visited.IsZero() {
		visited = now
	}

	rating := &domain.Rating{
		UserID:       userID,
		RestaurantID: restaurantID,
		Rating:       in.Rating,
		Notes:        in.Notes,
		VisitedAt:    visited,
		UpdatedAt:    now,
	}
	if err := s.store.UpsertRating(ctx, rating); err != nil {
		return nil, mapStoreError(err, "restaurant not found")
	}

	stored, err := s.store.GetRating(ctx, userID, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("reload rating: %w", err)
	}

	s.invalidate(userID)
	s.events.Emit(sse.NewRatingUpdatedEvent(stored))

	s.logger.Info("restaurant rated", "user_id", userID, "restaurant_id", restaurantID, "rated", stored.Rating != nil)
	return stored, nil
}

// RemoveRating deletes a logged visit. Remaining ranks keep their relative order.
func (s *RankingService) RemoveRating(ctx context.Context, userID, restaurantID string) error {
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.store.DeleteRating(ctx, userID, restaurantID); err != nil {
		return mapStoreError(err, "rating not found")
	}

	s.invalidate(userID)
	return nil
}

func (s *RankingService) invalidate(userID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.InvalidateUser(userID); err != nil {
		s.logger.Warn("failed to invalidate cached recommendations", "user_id", userID, "error", err)
	}
}
