package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/sse"
	"github.com/platelistapp/platelist-server/internal/store"
)

// TasteService stores the onboarding questionnaire answers.
type TasteService struct {
	store  store.Store
	events EventEmitter
	cache  CacheInvalidator
	logger *slog.Logger
}

// NewTasteService creates a new taste service. cache may be nil.
func NewTasteService(store store.Store, events EventEmitter, cache CacheInvalidator, logger *slog.Logger) *TasteService {
	if events == nil {
		events = NewNoopEmitter()
	}
	return &TasteService{store: store, events: events, cache: cache, logger: logger}
}

// Get returns the user's taste profile. A user who never answered gets an
// empty profile, which the scorer treats as "no preference".
func (s *TasteService) Get(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &domain.TasteProfile{UserID: userID}, nil
	}
	return p, nil
}

func (s *TasteService) load(ctx context.Context, userID string) (*domain.TasteProfile, error) {
	return loadTaste(ctx, s.store, userID)
}

// loadTaste returns nil when the user has no stored profile.
func loadTaste(ctx context.Context, st store.Store, userID string) (*domain.TasteProfile, error) {
	p, err := st.GetTasteProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get taste profile: %w", err)
	}
	return p, nil
}

// Save replaces the user's taste profile.
func (s *TasteService) Save(ctx context.Context, profile *domain.TasteProfile) (*domain.TasteProfile, error) {
	if profile.Adventurousness != "" {
		if _, ok := profile.Adventurousness.Weight(); !ok {
			return nil, domainerrors.Validationf("unknown adventurousness %q", profile.Adventurousness)
		}
	}
	if profile.PriceTier < 0 || profile.PriceTier > 4 {
		return nil, domainerrors.Validationf("price tier %d is outside 0-4", profile.PriceTier)
	}

	p := *profile
	p.FavoriteCuisine = cuisine.Canonical(p.FavoriteCuisine)
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveTasteProfile(ctx, &p); err != nil {
		return nil, fmt.Errorf("save taste profile: %w", err)
	}

	if s.cache != nil {
		if _, err := s.cache.InvalidateUser(p.UserID); err != nil {
			s.logger.Warn("failed to invalidate cached recommendations", "user_id", p.UserID, "error", err)
		}
	}
	s.events.Emit(sse.NewTasteUpdatedEvent(&p))

	s.logger.Info("taste profile saved", "user_id", p.UserID)
	return &p, nil
}
