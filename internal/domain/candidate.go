package domain

// Candidate is a restaurant being evaluated for recommendation.
// It is never mutated by the scorer.
type Candidate struct {
	ExternalRating      *float64 `json:"external_rating,omitempty"` // Public aggregate rating, 0-5
	ID                  string   `json:"id"`
	Name                string   `json:"name,omitempty"`
	Cuisine             string   `json:"cuisine,omitempty"`
	City                string   `json:"city,omitempty"`
	PriceTier           int      `json:"price_tier,omitempty"`
	FriendRatingCount   int      `json:"friend_rating_count,omitempty"`
	FriendAverageRating float64  `json:"friend_average_rating,omitempty"` // 0-10
	IsOpenNow           bool     `json:"is_open_now,omitempty"`
	ExpertEndorsed      bool     `json:"expert_endorsed,omitempty"`
}

// ScoredCandidate is a candidate with its confidence score and the reasons behind it.
type ScoredCandidate struct {
	Candidate
	MatchFactors    []string `json:"match_factors"`    // At most three, most impactful first
	ConfidenceScore int      `json:"confidence_score"` // 1-99
}

// PreferenceModel is derived from a user's rated items on every scoring run.
// Keys are canonical cuisine and city names.
type PreferenceModel struct {
	CuisineAffinity  map[string]float64 `json:"cuisine_affinity"`
	CityFamiliarity  map[string]int     `json:"city_familiarity"`
	AveragePriceTier float64            `json:"average_price_tier"`
}

// IsEmpty reports whether the model carries no cuisine or city history.
func (m PreferenceModel) IsEmpty() bool {
	return len(m.CuisineAffinity) == 0 && len(m.CityFamiliarity) == 0
}
