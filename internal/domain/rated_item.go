package domain

// Rating scale limits. Ratings are stored with one decimal place.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// RatedItem is one restaurant the user has visited and scored.
// Items without a rating are excluded from ranking.
type RatedItem struct {
	Rating     *float64 `json:"rating,omitempty"`      // 1.0-10.0, nil when unrated
	ManualRank *int     `json:"manual_rank,omitempty"` // Authoritative position when set (1-based)
	ID         string   `json:"id"`
	Cuisine    string   `json:"cuisine,omitempty"`
	City       string   `json:"city,omitempty"`
	PriceTier  int      `json:"price_tier,omitempty"` // 1-4, 0 when unknown
}

// IsRated reports whether the item carries a rating and can be ranked.
func (r RatedItem) IsRated() bool {
	return r.Rating != nil
}

// HasManualRank reports whether the user placed this item explicitly.
func (r RatedItem) HasManualRank() bool {
	return r.ManualRank != nil
}

// RatingValue returns the rating or 0 when the item is unrated.
func (r RatedItem) RatingValue() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// Float returns a pointer to v. Convenience for building items in code and tests.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
