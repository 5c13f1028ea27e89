package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{userId}/recommendations",
		Summary:     "Get recommendations",
		Description: "Scores restaurants the user has not visited against their log and taste profile",
		Tags:        []string{"Recommendations"},
		Middlewares: huma.Middlewares{s.rateLimited},
	}, s.handleRecommend)

	huma.Register(s.api, huma.Operation{
		OperationID: "scoreCandidates",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations/score",
		Summary:     "Score candidates",
		Description: "Scores caller-supplied candidates against caller-supplied rated items. Nothing is read or stored.",
		Tags:        []string{"Recommendations"},
		Middlewares: huma.Middlewares{s.rateLimited},
	}, s.handleScoreCandidates)
}

// === DTOs ===

// RecommendRequest is the request body for a recommendation run.
type RecommendRequest struct {
	Query   string `json:"query,omitempty" validate:"max=200" doc:"Free text resolved through restaurant search"`
	City    string `json:"city,omitempty" validate:"max=100" doc:"Only restaurants in this city"`
	Cuisine string `json:"cuisine,omitempty" validate:"max=100" doc:"Only restaurants of this cuisine"`
	OpenNow bool   `json:"open_now,omitempty" doc:"Only restaurants open right now"`
	Limit   int    `json:"limit,omitempty" validate:"min=0,max=100" doc:"Maximum results; server default when 0"`
}

// RecommendInput wraps the recommendation request for Huma.
type RecommendInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   RecommendRequest
}

// RecommendationsOutput wraps scored recommendations for Huma.
type RecommendationsOutput struct {
	Body *service.Recommendations
}

// ScoreRequest is the request body for ad-hoc scoring.
type ScoreRequest struct {
	Items      []domain.RatedItem   `json:"items" validate:"max=5000" doc:"The user's rated items"`
	Candidates []domain.Candidate   `json:"candidates" validate:"max=1000" doc:"Restaurants to score"`
	Taste      *domain.TasteProfile `json:"taste,omitempty" doc:"Optional questionnaire answers"`
}

// ScoreInput wraps the score request for Huma.
type ScoreInput struct {
	Body ScoreRequest
}

// ScoreResponse contains scored candidates, best first.
type ScoreResponse struct {
	Items []domain.ScoredCandidate `json:"items" doc:"Scored candidates, best first"`
}

// ScoreOutput wraps the score response for Huma.
type ScoreOutput struct {
	Body ScoreResponse
}

// === Handlers ===

func (s *Server) handleRecommend(ctx context.Context, input *RecommendInput) (*RecommendationsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	recs, err := s.services.Recommendation.Recommend(ctx, input.UserID, service.RecommendParams{
		Query:   input.Body.Query,
		City:    input.Body.City,
		Cuisine: input.Body.Cuisine,
		OpenNow: input.Body.OpenNow,
		Limit:   input.Body.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &RecommendationsOutput{Body: recs}, nil
}

func (s *Server) handleScoreCandidates(_ context.Context, input *ScoreInput) (*ScoreOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	scored := s.services.Recommendation.ScoreAdHoc(input.Body.Items, input.Body.Candidates, input.Body.Taste)
	return &ScoreOutput{Body: ScoreResponse{Items: scored}}, nil
}
