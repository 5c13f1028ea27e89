package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/id"
	"github.com/platelistapp/platelist-server/internal/store"
)

// CreateRestaurantInput is what a client supplies to add a restaurant.
type CreateRestaurantInput struct {
	ExternalRating *float64
	Name           string
	Cuisine        string
	City           string
	Address        string
	PriceTier      int
	IsOpenNow      bool
	ExpertEndorsed bool
}

// RestaurantService manages the restaurant catalog.
type RestaurantService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(store store.Store, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{store: store, logger: logger}
}

// Create adds a restaurant. Cuisine and city are stored in canonical form so
// preference keys and candidate filters line up.
func (s *RestaurantService) Create(ctx context.Context, in CreateRestaurantInput) (*domain.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainerrors.Validation("restaurant name is required")
	}
	if in.ExternalRating != nil && (*in.ExternalRating < 0 || *in.ExternalRating > 5) {
		return nil, domainerrors.Validationf("external rating %.1f is outside 0-5", *in.ExternalRating)
	}

	restID, err := id.Generate("rest")
	if err != nil {
		return nil, fmt.Errorf("generate restaurant id: %w", err)
	}

	now := time.Now().UTC()
	r := &domain.Restaurant{
		ID:             restID,
		CreatedAt:      now,
		UpdatedAt:      now,
		Name:           name,
		Cuisine:        cuisine.Canonical(in.Cuisine),
		City:           cuisine.CanonicalCity(in.City),
		Address:        strings.TrimSpace(in.Address),
		PriceTier:      in.PriceTier,
		ExternalRating: in.ExternalRating,
		IsOpenNow:      in.IsOpenNow,
		ExpertEndorsed: in.ExpertEndorsed,
	}

	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, mapStoreError(err, "restaurant already exists")
	}

	s.logger.Info("restaurant created", "id", r.ID, "name", r.Name, "cuisine", r.Cuisine, "city", r.City)
	return r, nil
}

// Get returns one restaurant.
func (s *RestaurantService) Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	r, err := s.store.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, mapStoreError(err, "restaurant not found")
	}
	return r, nil
}

// List returns a page of restaurants ordered by ID.
func (s *RestaurantService) List(ctx context.Context, params store.PaginationParams) (*store.PaginatedResult[*domain.Restaurant], error) {
	params.Validate()
	page, err := s.store.ListRestaurants(ctx, params)
	if err != nil {
		return nil, mapStoreError(err, "invalid cursor")
	}
	return page, nil
}
