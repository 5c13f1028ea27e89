// Package store defines the persistence interface for the Platelist server.
package store

import (
	"context"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// CandidateFilter narrows the restaurants considered for recommendation.
type CandidateFilter struct {
	City    string
	Cuisine string
	OpenNow bool
	Limit   int
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error
	SetSearchIndexer(indexer SearchIndexer)

	// Restaurants
	CreateRestaurant(ctx context.Context, r *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, r *domain.Restaurant) error
	ListRestaurants(ctx context.Context, params PaginationParams) (*PaginatedResult[*domain.Restaurant], error)
	ListAllRestaurants(ctx context.Context) ([]*domain.Restaurant, error)

	// Ratings
	UpsertRating(ctx context.Context, rating *domain.Rating) error
	GetRating(ctx context.Context, userID, restaurantID string) (*domain.Rating, error)
	DeleteRating(ctx context.Context, userID, restaurantID string) error
	ListRatedItems(ctx context.Context, userID string) ([]domain.RatedItem, error)
	ApplyRankUpdates(ctx context.Context, userID string, updates []domain.RankUpdate) error

	// Taste profiles
	GetTasteProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	SaveTasteProfile(ctx context.Context, profile *domain.TasteProfile) error

	// Candidates
	ListCandidates(ctx context.Context, userID string, filter CandidateFilter) ([]domain.Candidate, error)
	GetCandidates(ctx context.Context, userID string, restaurantIDs []string) ([]domain.Candidate, error)

	// Friendships (read-only input to social signals; written by seeding)
	AddFriendship(ctx context.Context, userID, friendID string) error
}
