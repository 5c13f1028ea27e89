package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/service"
)

func (s *Server) registerRankingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRanking",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/ranking",
		Summary:     "Get ranking",
		Description: "Returns the user's rated restaurants in display order, best first",
		Tags:        []string{"Ranking"},
	}, s.handleGetRanking)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRankingBounds",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/ranking/bounds/{index}",
		Summary:     "Get rating bounds",
		Description: "Returns the rating interval consistent with the neighbors of the item at index",
		Tags:        []string{"Ranking"},
	}, s.handleGetBounds)

	huma.Register(s.api, huma.Operation{
		OperationID: "planMove",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{userId}/ranking/plan",
		Summary:     "Preview a move",
		Description: "Computes the rank updates and rating bounds for a move without saving it",
		Tags:        []string{"Ranking"},
	}, s.handlePlanMove)

	huma.Register(s.api, huma.Operation{
		OperationID: "applyMove",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{userId}/ranking/moves",
		Summary:     "Apply a move",
		Description: "Moves an item and persists the new ranks atomically. Rejected with 409 when the view is stale.",
		Tags:        []string{"Ranking"},
	}, s.handleApplyMove)
}

// === DTOs ===

// UserInput identifies the user a request acts for.
type UserInput struct {
	UserID string `path:"userId" doc:"User ID"`
}

// RankedItemResponse is one row of a ranking.
type RankedItemResponse struct {
	domain.RatedItem
	Position int `json:"position" doc:"0-based display position"`
}

// RankingResponse contains a user's ranking.
type RankingResponse struct {
	Items []RankedItemResponse `json:"items" doc:"Rated items, best first"`
}

// RankingOutput wraps the ranking response for Huma.
type RankingOutput struct {
	Body RankingResponse
}

// BoundsInput contains parameters for a bounds lookup.
type BoundsInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Index  int    `path:"index" doc:"0-based display position"`
}

// BoundsResponse is the rating interval implied by a position.
type BoundsResponse struct {
	Index int     `json:"index" doc:"0-based display position"`
	Min   float64 `json:"min" doc:"Lowest consistent rating"`
	Max   float64 `json:"max" doc:"Highest consistent rating"`
}

// BoundsOutput wraps the bounds response for Huma.
type BoundsOutput struct {
	Body BoundsResponse
}

// MoveRequest is the request body for previewing or applying a move.
type MoveRequest struct {
	From int      `json:"from" doc:"Current 0-based position"`
	To   int      `json:"to" doc:"Target 0-based position"`
	View []string `json:"view,omitempty" doc:"Item IDs in the order the client displayed; stale views are rejected"`
}

// MoveInput wraps the move request for Huma.
type MoveInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   MoveRequest
}

// PlanOutput wraps a reorder plan for Huma.
type PlanOutput struct {
	Body *domain.ReorderPlan
}

// MoveResponse is the outcome of an applied move.
type MoveResponse struct {
	Plan           *domain.ReorderPlan  `json:"plan" doc:"Applied plan"`
	Items          []RankedItemResponse `json:"items" doc:"Ranking after the move"`
	RatingConflict bool                 `json:"rating_conflict" doc:"Whether the moved item's rating no longer fits its neighbors"`
}

// MoveOutput wraps the move response for Huma.
type MoveOutput struct {
	Body MoveResponse
}

// === Handlers ===

func (s *Server) handleGetRanking(ctx context.Context, input *UserInput) (*RankingOutput, error) {
	order, err := s.services.Ranking.GetRanking(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &RankingOutput{Body: RankingResponse{Items: toRankedItems(order)}}, nil
}

func (s *Server) handleGetBounds(ctx context.Context, input *BoundsInput) (*BoundsOutput, error) {
	b, err := s.services.Ranking.Bounds(ctx, input.UserID, input.Index)
	if err != nil {
		return nil, err
	}
	return &BoundsOutput{Body: BoundsResponse{Index: input.Index, Min: b.Min, Max: b.Max}}, nil
}

func (s *Server) handlePlanMove(ctx context.Context, input *MoveInput) (*PlanOutput, error) {
	plan, err := s.services.Ranking.PreviewMove(ctx, input.UserID, toMoveInput(input.Body))
	if err != nil {
		return nil, err
	}
	return &PlanOutput{Body: plan}, nil
}

func (s *Server) handleApplyMove(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	result, err := s.services.Ranking.ApplyMove(ctx, input.UserID, toMoveInput(input.Body))
	if err != nil {
		return nil, err
	}
	return &MoveOutput{
		Body: MoveResponse{
			Plan:           result.Plan,
			Items:          toRankedItems(result.Order),
			RatingConflict: result.RatingConflict,
		},
	}, nil
}

func toMoveInput(req MoveRequest) service.MoveInput {
	return service.MoveInput{View: req.View, From: req.From, To: req.To}
}

func toRankedItems(order []domain.RatedItem) []RankedItemResponse {
	items := make([]RankedItemResponse, len(order))
	for i, item := range order {
		items[i] = RankedItemResponse{RatedItem: item, Position: i}
	}
	return items
}
