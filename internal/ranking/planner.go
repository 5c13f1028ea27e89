package ranking

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/id"
)

// InvalidIndexError is returned when a move references a position outside the list.
type InvalidIndexError struct {
	Name  string
	Index int
	Len   int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("%s %d out of range for %d items", e.Name, e.Index, e.Len)
}

// Unwrap exposes the domain error so API layers map it to a client error.
func (e *InvalidIndexError) Unwrap() error {
	return &domainerrors.Error{Code: domainerrors.CodeInvalidIndex, Message: e.Error()}
}

// Move returns a copy of order with the item at from reinserted at to.
func Move(order []domain.RatedItem, from, to int) ([]domain.RatedItem, error) {
	if err := checkIndex("from_index", from, len(order)); err != nil {
		return nil, err
	}
	if err := checkIndex("to_index", to, len(order)); err != nil {
		return nil, err
	}

	moved := order[from]
	next := slices.Delete(slices.Clone(order), from, from+1)
	return slices.Insert(next, to, moved), nil
}

// PlanMove computes the writes for dragging the item at from to position to.
//
// Only positions whose occupant changed get a rank update, so the write cost
// is bounded by the distance moved. The moved item alone is checked against
// its new neighbors; if its rating no longer fits (or it has none) the plan
// carries the interval it should be re-rated into.
//
// The same arguments always produce the same plan, including its ID.
func PlanMove(current []domain.RatedItem, from, to int) (*domain.ReorderPlan, error) {
	next, err := Move(current, from, to)
	if err != nil {
		return nil, err
	}

	plan := &domain.ReorderPlan{
		ID:           planID(current, from, to),
		RankUpdates:  []domain.RankUpdate{},
		RatingBounds: []domain.RatingBound{},
	}
	if from == to {
		return plan, nil
	}

	for i := range next {
		if next[i].ID != current[i].ID {
			plan.RankUpdates = append(plan.RankUpdates, domain.RankUpdate{
				ItemID:        next[i].ID,
				NewManualRank: i + 1,
			})
		}
	}

	bounds, _ := BoundsAt(next, to)
	moved := next[to]
	if !moved.IsRated() || !bounds.Contains(*moved.Rating) {
		plan.RatingBounds = append(plan.RatingBounds, domain.RatingBound{
			ItemID:            moved.ID,
			RequiredMinRating: bounds.Min,
			RequiredMaxRating: bounds.Max,
		})
	}

	return plan, nil
}

func checkIndex(name string, index, n int) error {
	if index < 0 || index >= n {
		return &InvalidIndexError{Name: name, Index: index, Len: n}
	}
	return nil
}

// planID derives the plan ID from everything the plan depends on.
func planID(current []domain.RatedItem, from, to int) string {
	parts := make([]string, 0, len(current)*3+2)
	for _, item := range current {
		parts = append(parts, item.ID, formatRating(item.Rating), formatRank(item.ManualRank))
	}
	parts = append(parts, strconv.Itoa(from), strconv.Itoa(to))
	return id.Deterministic(id.PrefixPlan, parts...)
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func formatRank(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
