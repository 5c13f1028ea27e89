package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/service"
	"github.com/platelistapp/platelist-server/internal/store"
)

func (s *Server) registerRestaurantRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createRestaurant",
		Method:        http.MethodPost,
		Path:          "/api/v1/restaurants",
		Summary:       "Create restaurant",
		Description:   "Adds a restaurant to the catalog. Cuisine and city are stored in canonical form.",
		Tags:          []string{"Restaurants"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRestaurant)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRestaurants",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants",
		Summary:     "List restaurants",
		Description: "Returns a page of restaurants ordered by ID",
		Tags:        []string{"Restaurants"},
	}, s.handleListRestaurants)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchRestaurants",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants/search",
		Summary:     "Search restaurants",
		Description: "Full-text restaurant search with cuisine, city, price and rating filters",
		Tags:        []string{"Restaurants"},
	}, s.handleSearchRestaurants)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRestaurant",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants/{id}",
		Summary:     "Get restaurant",
		Description: "Returns a restaurant by ID",
		Tags:        []string{"Restaurants"},
	}, s.handleGetRestaurant)
}

// === DTOs ===

// CreateRestaurantRequest is the request body for creating a restaurant.
type CreateRestaurantRequest struct {
	Name           string   `json:"name" validate:"required,max=200" doc:"Display name"`
	Cuisine        string   `json:"cuisine,omitempty" validate:"max=100" doc:"Cuisine; aliases like 'ramen' are canonicalized"`
	City           string   `json:"city,omitempty" validate:"max=100" doc:"City"`
	Address        string   `json:"address,omitempty" validate:"max=500" doc:"Street address"`
	PriceTier      int      `json:"price_tier,omitempty" validate:"pricetier" doc:"Price tier 1-4, 0 when unknown"`
	ExternalRating *float64 `json:"external_rating,omitempty" validate:"omitempty,min=0,max=5" doc:"Public aggregate rating, 0-5"`
	IsOpenNow      bool     `json:"is_open_now,omitempty" doc:"Whether the restaurant is currently open"`
	ExpertEndorsed bool     `json:"expert_endorsed,omitempty" doc:"Whether critics or guides recommend it"`
}

// CreateRestaurantInput wraps the create restaurant request for Huma.
type CreateRestaurantInput struct {
	Body CreateRestaurantRequest
}

// RestaurantResponse contains restaurant data in API responses.
type RestaurantResponse struct {
	ID             string    `json:"id" doc:"Restaurant ID"`
	Name           string    `json:"name" doc:"Display name"`
	Cuisine        string    `json:"cuisine,omitempty" doc:"Canonical cuisine"`
	City           string    `json:"city,omitempty" doc:"Canonical city"`
	Address        string    `json:"address,omitempty" doc:"Street address"`
	PriceTier      int       `json:"price_tier" doc:"Price tier 1-4, 0 when unknown"`
	ExternalRating *float64  `json:"external_rating,omitempty" doc:"Public aggregate rating, 0-5"`
	IsOpenNow      bool      `json:"is_open_now" doc:"Whether the restaurant is currently open"`
	ExpertEndorsed bool      `json:"expert_endorsed" doc:"Whether critics or guides recommend it"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt      time.Time `json:"updated_at" doc:"Last update time"`
}

// RestaurantOutput wraps the restaurant response for Huma.
type RestaurantOutput struct {
	Body RestaurantResponse
}

// ListRestaurantsInput contains pagination parameters for listing restaurants.
type ListRestaurantsInput struct {
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
	Limit  int    `query:"limit" default:"100" minimum:"1" maximum:"1000" doc:"Items per page"`
}

// ListRestaurantsResponse contains a page of restaurants.
type ListRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants" doc:"Restaurants on this page"`
	NextCursor  string               `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
	HasMore     bool                 `json:"has_more" doc:"Whether more pages exist"`
}

// ListRestaurantsOutput wraps the list response for Huma.
type ListRestaurantsOutput struct {
	Body ListRestaurantsResponse
}

// SearchRestaurantsInput contains search query parameters.
type SearchRestaurantsInput struct {
	Query     string  `query:"q" doc:"Free text matched against name and cuisine"`
	Cuisine   string  `query:"cuisine" doc:"Exact cuisine filter"`
	City      string  `query:"city" doc:"Exact city filter"`
	MinPrice  int     `query:"min_price" minimum:"0" maximum:"4" doc:"Lowest price tier"`
	MaxPrice  int     `query:"max_price" minimum:"0" maximum:"4" doc:"Highest price tier"`
	MinRating float64 `query:"min_rating" minimum:"0" maximum:"5" doc:"Lowest external rating"`
	Sort      string  `query:"sort" enum:"relevance,name,rating,recent" default:"relevance" doc:"Sort order"`
	Limit     int     `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Results per page"`
	Offset    int     `query:"offset" minimum:"0" doc:"Results to skip"`
}

// SearchRestaurantsOutput wraps search results for Huma.
type SearchRestaurantsOutput struct {
	Body *search.SearchResult
}

// GetRestaurantInput contains parameters for getting a restaurant.
type GetRestaurantInput struct {
	ID string `path:"id" doc:"Restaurant ID"`
}

// === Handlers ===

func (s *Server) handleCreateRestaurant(ctx context.Context, input *CreateRestaurantInput) (*RestaurantOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	r, err := s.services.Restaurant.Create(ctx, service.CreateRestaurantInput{
		Name:           input.Body.Name,
		Cuisine:        input.Body.Cuisine,
		City:           input.Body.City,
		Address:        input.Body.Address,
		PriceTier:      input.Body.PriceTier,
		ExternalRating: input.Body.ExternalRating,
		IsOpenNow:      input.Body.IsOpenNow,
		ExpertEndorsed: input.Body.ExpertEndorsed,
	})
	if err != nil {
		return nil, err
	}

	return &RestaurantOutput{Body: toRestaurantResponse(r)}, nil
}

func (s *Server) handleListRestaurants(ctx context.Context, input *ListRestaurantsInput) (*ListRestaurantsOutput, error) {
	page, err := s.services.Restaurant.List(ctx, store.PaginationParams{
		Cursor: input.Cursor,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]RestaurantResponse, len(page.Items))
	for i, r := range page.Items {
		resp[i] = toRestaurantResponse(r)
	}

	return &ListRestaurantsOutput{
		Body: ListRestaurantsResponse{
			Restaurants: resp,
			NextCursor:  page.NextCursor,
			HasMore:     page.HasMore,
		},
	}, nil
}

func (s *Server) handleSearchRestaurants(ctx context.Context, input *SearchRestaurantsInput) (*SearchRestaurantsOutput, error) {
	if s.services.Search == nil {
		return nil, huma.Error503ServiceUnavailable("search is not available")
	}
	if input.MinPrice > 0 && input.MaxPrice > 0 && input.MinPrice > input.MaxPrice {
		return nil, domainerrors.Validationf("min_price %d exceeds max_price %d", input.MinPrice, input.MaxPrice)
	}

	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Cuisine = input.Cuisine
	params.City = input.City
	params.MinPriceTier = input.MinPrice
	params.MaxPriceTier = input.MaxPrice
	params.MinExternalRating = input.MinRating
	params.SortBy = input.Sort
	params.Limit = input.Limit
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchRestaurantsOutput{Body: result}, nil
}

func (s *Server) handleGetRestaurant(ctx context.Context, input *GetRestaurantInput) (*RestaurantOutput, error) {
	r, err := s.services.Restaurant.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &RestaurantOutput{Body: toRestaurantResponse(r)}, nil
}

func toRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:             r.ID,
		Name:           r.Name,
		Cuisine:        r.Cuisine,
		City:           r.City,
		Address:        r.Address,
		PriceTier:      r.PriceTier,
		ExternalRating: r.ExternalRating,
		IsOpenNow:      r.IsOpenNow,
		ExpertEndorsed: r.ExpertEndorsed,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
