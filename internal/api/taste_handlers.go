package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platelistapp/platelist-server/internal/domain"
)

func (s *Server) registerTasteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getTasteProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userId}/taste",
		Summary:     "Get taste profile",
		Description: "Returns the user's questionnaire answers; empty when never answered",
		Tags:        []string{"Taste"},
	}, s.handleGetTaste)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveTasteProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{userId}/taste",
		Summary:     "Save taste profile",
		Description: "Replaces the user's questionnaire answers",
		Tags:        []string{"Taste"},
	}, s.handleSaveTaste)
}

// === DTOs ===

// TasteRequest is the request body for saving a taste profile.
// Every field is optional.
type TasteRequest struct {
	FavoriteCuisine string `json:"favorite_cuisine,omitempty" validate:"max=100" doc:"Favorite cuisine"`
	Adventurousness string `json:"adventurousness,omitempty" validate:"omitempty,oneof=comfort sometimes always" doc:"comfort, sometimes, or always"`
	DiningVibe      string `json:"dining_vibe,omitempty" validate:"omitempty,oneof=casual date_night fine_dining quick_bite family trendy" doc:"Usual kind of outing"`
	Priority        string `json:"priority,omitempty" validate:"omitempty,oneof=food_quality value ambiance service" doc:"What matters most"`
	Dietary         string `json:"dietary,omitempty" validate:"omitempty,oneof=none vegetarian vegan gluten_free halal kosher" doc:"Dietary restriction"`
	PriceTier       int    `json:"price_tier,omitempty" validate:"pricetier" doc:"Preferred price tier 1-4, 0 for no preference"`
	PartySize       int    `json:"party_size,omitempty" validate:"min=0,max=50" doc:"Usual party size"`
}

// SaveTasteInput wraps the taste request for Huma.
type SaveTasteInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Body   TasteRequest
}

// TasteOutput wraps a taste profile for Huma.
type TasteOutput struct {
	Body *domain.TasteProfile
}

// === Handlers ===

func (s *Server) handleGetTaste(ctx context.Context, input *UserInput) (*TasteOutput, error) {
	p, err := s.services.Taste.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &TasteOutput{Body: p}, nil
}

func (s *Server) handleSaveTaste(ctx context.Context, input *SaveTasteInput) (*TasteOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	p, err := s.services.Taste.Save(ctx, &domain.TasteProfile{
		UserID:          input.UserID,
		FavoriteCuisine: input.Body.FavoriteCuisine,
		Adventurousness: domain.Adventurousness(input.Body.Adventurousness),
		DiningVibe:      domain.DiningVibe(input.Body.DiningVibe),
		Priority:        domain.Priority(input.Body.Priority),
		Dietary:         domain.Dietary(input.Body.Dietary),
		PriceTier:       input.Body.PriceTier,
		PartySize:       input.Body.PartySize,
	})
	if err != nil {
		return nil, err
	}
	return &TasteOutput{Body: p}, nil
}
