package domain

import "time"

// Restaurant is a place users can log visits to and receive as a recommendation.
type Restaurant struct {
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ExternalRating *float64  `json:"external_rating,omitempty"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Cuisine        string    `json:"cuisine"`
	City           string    `json:"city"`
	Address        string    `json:"address,omitempty"`
	PriceTier      int       `json:"price_tier"`
	IsOpenNow      bool      `json:"is_open_now"`
	ExpertEndorsed bool      `json:"expert_endorsed"`
}

// Rating is a user's logged visit to a restaurant.
type Rating struct {
	VisitedAt    time.Time `json:"visited_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Rating       *float64  `json:"rating,omitempty"`
	ManualRank   *int      `json:"manual_rank,omitempty"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Notes        string    `json:"notes,omitempty"`
}

// RatedItem projects the rating and its restaurant into the shape the ranking engine consumes.
func (r *Rating) RatedItem(rest *Restaurant) RatedItem {
	item := RatedItem{
		ID:         r.RestaurantID,
		Rating:     r.Rating,
		ManualRank: r.ManualRank,
	}
	if rest != nil {
		item.Cuisine = rest.Cuisine
		item.City = rest.City
		item.PriceTier = rest.PriceTier
	}
	return item
}

// Candidate projects the restaurant into a recommendation candidate.
// Social signals are filled in by the store.
func (r *Restaurant) Candidate() Candidate {
	return Candidate{
		ID:             r.ID,
		Name:           r.Name,
		Cuisine:        r.Cuisine,
		City:           r.City,
		PriceTier:      r.PriceTier,
		ExternalRating: r.ExternalRating,
		IsOpenNow:      r.IsOpenNow,
		ExpertEndorsed: r.ExpertEndorsed,
	}
}
