package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platelistapp/platelist-server/internal/service"
)

func (s *Server) registerRatingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "rateRestaurant",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{userId}/ratings/{restaurantId}",
		Summary:     "Log a visit",
		Description: "Records a visit and its rating. Omitting the rating logs the visit without ranking it.",
		Tags:        []string{"Ratings"},
	}, s.handleRateRestaurant)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRating",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{userId}/ratings/{restaurantId}",
		Summary:       "Delete a visit",
		Description:   "Removes a logged visit. Remaining items keep their relative order.",
		Tags:          []string{"Ratings"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRating)
}

// === DTOs ===

// RateRequest is the request body for logging a visit.
type RateRequest struct {
	Rating    *float64  `json:"rating,omitempty" nullable:"true" validate:"omitempty,rating" doc:"Rating 1.0-10.0 with one decimal place"`
	VisitedAt time.Time `json:"visited_at,omitzero" doc:"When the visit happened; defaults to now"`
	Notes     string    `json:"notes,omitempty" validate:"max=2000" doc:"Free-form notes"`
}

// RateInput wraps the rate request for Huma.
type RateInput struct {
	UserID       string `path:"userId" doc:"User ID"`
	RestaurantID string `path:"restaurantId" doc:"Restaurant ID"`
	Body         RateRequest
}

// RatingResponse contains a logged visit in API responses.
type RatingResponse struct {
	UserID       string    `json:"user_id" doc:"User ID"`
	RestaurantID string    `json:"restaurant_id" doc:"Restaurant ID"`
	Rating       *float64  `json:"rating,omitempty" doc:"Rating 1.0-10.0"`
	ManualRank   *int      `json:"manual_rank,omitempty" doc:"Explicit 1-based rank"`
	Notes        string    `json:"notes,omitempty" doc:"Free-form notes"`
	VisitedAt    time.Time `json:"visited_at" doc:"Visit time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// RatingOutput wraps the rating response for Huma.
type RatingOutput struct {
	Body RatingResponse
}

// DeleteRatingInput contains parameters for deleting a visit.
type DeleteRatingInput struct {
	UserID       string `path:"userId" doc:"User ID"`
	RestaurantID string `path:"restaurantId" doc:"Restaurant ID"`
}

// === Handlers ===

func (s *Server) handleRateRestaurant(ctx context.Context, input *RateInput) (*RatingOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	r, err := s.services.Ranking.RateRestaurant(ctx, input.UserID, input.RestaurantID, service.RateInput{
		Rating:    input.Body.Rating,
		VisitedAt: input.Body.VisitedAt,
		Notes:     input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &RatingOutput{
		Body: RatingResponse{
			UserID:       r.UserID,
			RestaurantID: r.RestaurantID,
			Rating:       r.Rating,
			ManualRank:   r.ManualRank,
			Notes:        r.Notes,
			VisitedAt:    r.VisitedAt,
			UpdatedAt:    r.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleDeleteRating(ctx context.Context, input *DeleteRatingInput) (*struct{}, error) {
	if err := s.services.Ranking.RemoveRating(ctx, input.UserID, input.RestaurantID); err != nil {
		return nil, err
	}
	return nil, nil
}
