package ranking

import (
	"math"

	"github.com/platelistapp/platelist-server/internal/domain"
)

// Step is the rating granularity.
const Step = 0.1

// Bounds is the inclusive rating interval implied by a position.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether rating lies within the interval.
func (b Bounds) Contains(rating float64) bool {
	return rating >= b.Min && rating <= b.Max
}

// SolveBounds computes the rating interval for an item placed between prev
// (displayed just above) and next (displayed just below). Either neighbor may
// be nil; a neighbor without a rating counts as absent.
//
// When neighbors are within one step of each other the interval is widened to
// one step above min, so callers always get a selectable value. The result may
// then overlap a neighbor's rating by up to one step; callers must not assume
// Min < Max - Step.
func SolveBounds(prev, next *domain.RatedItem) Bounds {
	b := Bounds{Min: domain.MinRating, Max: domain.MaxRating}

	if next != nil && next.IsRated() {
		b.Min = round(*next.Rating + Step)
	}
	if prev != nil && prev.IsRated() {
		b.Max = round(*prev.Rating - Step)
	}

	if b.Max <= b.Min {
		b.Max = round(b.Min + Step)
	}

	b.Min = math.Max(b.Min, domain.MinRating)
	b.Max = math.Min(b.Max, domain.MaxRating)

	// Clamping at the top of the scale can collapse the interval (both
	// neighbors at 10.0); keep one step below the ceiling available.
	if b.Max <= b.Min {
		b.Min = round(b.Max - Step)
	}

	return b
}

// BoundsAt recomputes the valid rating interval for the item at index in an
// already ordered list.
func BoundsAt(order []domain.RatedItem, index int) (Bounds, error) {
	if index < 0 || index >= len(order) {
		return Bounds{}, &InvalidIndexError{Name: "index", Index: index, Len: len(order)}
	}

	var prev, next *domain.RatedItem
	if index > 0 {
		prev = &order[index-1]
	}
	if index < len(order)-1 {
		next = &order[index+1]
	}
	return SolveBounds(prev, next), nil
}

// round rounds to one decimal place.
func round(v float64) float64 {
	return math.Round(v*10) / 10
}
