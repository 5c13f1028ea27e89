package domain

// RankUpdate assigns a new manual rank to one rated item.
type RankUpdate struct {
	ItemID        string `json:"item_id"`
	NewManualRank int    `json:"new_manual_rank"`
}

// RatingBound is the rating interval an item must fall into to stay
// consistent with its neighbors.
type RatingBound struct {
	ItemID            string  `json:"item_id"`
	RequiredMinRating float64 `json:"required_min_rating"`
	RequiredMaxRating float64 `json:"required_max_rating"`
}

// Contains reports whether rating lies within the bound, inclusive.
func (b RatingBound) Contains(rating float64) bool {
	return rating >= b.RequiredMinRating && rating <= b.RequiredMaxRating
}

// ReorderPlan describes the writes needed to persist a single drag-and-drop move.
// The caller applies RankUpdates atomically; RatingBounds are advisory.
type ReorderPlan struct {
	ID           string        `json:"id"`
	RankUpdates  []RankUpdate  `json:"rank_updates"`
	RatingBounds []RatingBound `json:"rating_bounds"`
}

// IsEmpty reports whether applying the plan would change nothing.
func (p *ReorderPlan) IsEmpty() bool {
	return len(p.RankUpdates) == 0 && len(p.RatingBounds) == 0
}
