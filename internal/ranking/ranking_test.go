package ranking

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
)

func item(id string, rating float64) domain.RatedItem {
	return domain.RatedItem{ID: id, Rating: domain.Float(rating)}
}

func ranked(id string, rating float64, rank int) domain.RatedItem {
	return domain.RatedItem{ID: id, Rating: domain.Float(rating), ManualRank: domain.Int(rank)}
}

func TestOrder_ManualRankBeatsRating(t *testing.T) {
	items := []domain.RatedItem{
		ranked("a", 9.0, 2),
		ranked("b", 2.0, 1),
	}

	assert.Equal(t, []string{"b", "a"}, IDs(Order(items)))
}

func TestOrder_RankedBeforeUnranked(t *testing.T) {
	items := []domain.RatedItem{
		item("high", 9.9),
		ranked("low", 1.5, 7),
		item("mid", 6.0),
	}

	assert.Equal(t, []string{"low", "high", "mid"}, IDs(Order(items)))
}

func TestOrder_FallbackByRatingIsStable(t *testing.T) {
	items := []domain.RatedItem{
		item("a", 7.0),
		item("b", 8.5),
		item("c", 7.0),
		item("d", 8.5),
	}

	assert.Equal(t, []string{"b", "d", "a", "c"}, IDs(Order(items)))
}

func TestOrder_DropsUnrated(t *testing.T) {
	items := []domain.RatedItem{
		item("a", 5.0),
		{ID: "unrated", ManualRank: domain.Int(1)},
	}

	assert.Equal(t, []string{"a"}, IDs(Order(items)))
}

func TestOrder_EmptyInput(t *testing.T) {
	assert.Empty(t, Order(nil))
	assert.NotNil(t, Order(nil))
}

func TestOrder_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for run := 0; run < 50; run++ {
		items := make([]domain.RatedItem, 20)
		for i := range items {
			items[i] = domain.RatedItem{ID: fmt.Sprintf("r%d", i)}
			if rng.IntN(5) > 0 {
				items[i].Rating = domain.Float(float64(10+rng.IntN(91)) / 10)
			}
			if rng.IntN(2) == 0 {
				items[i].ManualRank = domain.Int(1 + rng.IntN(10))
			}
		}

		once := Order(items)
		assert.Equal(t, once, Order(once), "run %d", run)

		// Ranked items precede unranked, ranks ascend, ratings descend.
		for i := 1; i < len(once); i++ {
			a, b := once[i-1], once[i]
			switch {
			case a.HasManualRank() && b.HasManualRank():
				assert.LessOrEqual(t, *a.ManualRank, *b.ManualRank)
			case !a.HasManualRank():
				assert.False(t, b.HasManualRank())
				assert.GreaterOrEqual(t, *a.Rating, *b.Rating)
			}
		}
	}
}

func TestDrifted(t *testing.T) {
	canonical := []domain.RatedItem{item("a", 9), item("b", 8)}

	assert.False(t, Drifted([]string{"a", "b"}, canonical))
	assert.True(t, Drifted([]string{"b", "a"}, canonical))
	assert.True(t, Drifted([]string{"a"}, canonical))
	assert.True(t, Drifted(nil, canonical))
}

func TestSolveBounds(t *testing.T) {
	tests := []struct {
		name string
		prev *domain.RatedItem
		next *domain.RatedItem
		want Bounds
	}{
		{"both neighbors", ptr(item("p", 8.0)), ptr(item("n", 6.0)), Bounds{Min: 6.1, Max: 7.9}},
		{"sole item", nil, nil, Bounds{Min: 1.0, Max: 10.0}},
		{"moved to last", ptr(item("p", 4.0)), nil, Bounds{Min: 1.0, Max: 3.9}},
		{"moved to first", nil, ptr(item("n", 9.0)), Bounds{Min: 9.1, Max: 10.0}},
		{"unrated neighbor counts as absent", &domain.RatedItem{ID: "p"}, ptr(item("n", 3.0)), Bounds{Min: 3.1, Max: 10.0}},
		{"equal neighbors widen", ptr(item("p", 7.0)), ptr(item("n", 7.0)), Bounds{Min: 7.1, Max: 7.2}},
		{"below bottom of scale", ptr(item("p", 1.0)), nil, Bounds{Min: 1.0, Max: 1.1}},
		{"above top of scale", nil, ptr(item("n", 10.0)), Bounds{Min: 9.9, Max: 10.0}},
		{"both at ceiling", ptr(item("p", 10.0)), ptr(item("n", 10.0)), Bounds{Min: 9.9, Max: 10.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveBounds(tt.prev, tt.next)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
		})
	}
}

func TestSolveBounds_DegenerateIsNonEmpty(t *testing.T) {
	got := SolveBounds(ptr(item("p", 7.05)), ptr(item("n", 7.0)))
	assert.Greater(t, got.Max, got.Min)
	assert.GreaterOrEqual(t, got.Min, 1.0)
	assert.LessOrEqual(t, got.Max, 10.0)
}

func TestSolveBounds_AlwaysWithinScale(t *testing.T) {
	for p := 10; p <= 100; p++ {
		for n := 10; n <= p; n++ {
			got := SolveBounds(ptr(item("p", float64(p)/10)), ptr(item("n", float64(n)/10)))
			require.Greater(t, got.Max, got.Min, "prev %d next %d", p, n)
			require.GreaterOrEqual(t, got.Min, 1.0)
			require.LessOrEqual(t, got.Max, 10.0)
		}
	}
}

func TestBoundsAt(t *testing.T) {
	order := []domain.RatedItem{item("a", 9), item("b", 8), item("c", 7)}

	b, err := BoundsAt(order, 1)
	require.NoError(t, err)
	assert.InDelta(t, 7.1, b.Min, 1e-9)
	assert.InDelta(t, 8.9, b.Max, 1e-9)

	_, err = BoundsAt(order, 3)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidIndex))
}

func TestPlanMove_ReorderScenario(t *testing.T) {
	current := []domain.RatedItem{item("A", 9), item("B", 8), item("C", 7)}

	next, err := Move(current, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, IDs(next))

	plan, err := PlanMove(current, 2, 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.RankUpdate{
		{ItemID: "C", NewManualRank: 1},
		{ItemID: "A", NewManualRank: 2},
		{ItemID: "B", NewManualRank: 3},
	}, plan.RankUpdates)

	require.Len(t, plan.RatingBounds, 1)
	bound := plan.RatingBounds[0]
	assert.Equal(t, "C", bound.ItemID)
	assert.InDelta(t, 9.1, bound.RequiredMinRating, 1e-9)
	assert.InDelta(t, 10.0, bound.RequiredMaxRating, 1e-9)

	// The input slice is left untouched.
	assert.Equal(t, []string{"A", "B", "C"}, IDs(current))
}

func TestPlanMove_MinimalDiff(t *testing.T) {
	current := make([]domain.RatedItem, 10)
	for i := range current {
		current[i] = item(fmt.Sprintf("r%d", i), float64(10-i))
	}

	plan, err := PlanMove(current, 5, 0)
	require.NoError(t, err)

	require.Len(t, plan.RankUpdates, 6)
	for i, u := range plan.RankUpdates {
		assert.Equal(t, i+1, u.NewManualRank)
	}
	assert.Equal(t, "r5", plan.RankUpdates[0].ItemID)
}

func TestPlanMove_RatingStillFits(t *testing.T) {
	// b(8.0) moved between a(9.0) and c(7.0) already fits.
	current := []domain.RatedItem{item("b", 8.0), item("a", 9.0), item("c", 7.0)}

	plan, err := PlanMove(current, 0, 1)
	require.NoError(t, err)

	assert.Len(t, plan.RankUpdates, 2)
	assert.Empty(t, plan.RatingBounds)
}

func TestPlanMove_SameIndexIsEmpty(t *testing.T) {
	current := []domain.RatedItem{item("a", 9), item("b", 8)}

	plan, err := PlanMove(current, 1, 1)
	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
	assert.NotEmpty(t, plan.ID)
}

func TestPlanMove_Deterministic(t *testing.T) {
	current := []domain.RatedItem{item("a", 9), item("b", 8), ranked("c", 2, 3), item("d", 1)}

	first, err := PlanMove(current, 3, 1)
	require.NoError(t, err)
	second, err := PlanMove(current, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := PlanMove(current, 1, 3)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestPlanMove_InvalidIndex(t *testing.T) {
	current := []domain.RatedItem{item("a", 9), item("b", 8)}

	tests := []struct {
		name     string
		from, to int
	}{
		{"negative from", -1, 0},
		{"from past end", 2, 0},
		{"negative to", 0, -1},
		{"to past end", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanMove(current, tt.from, tt.to)
			require.Error(t, err)

			var idxErr *InvalidIndexError
			require.ErrorAs(t, err, &idxErr)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidIndex))
		})
	}

	_, err := PlanMove(nil, 0, 0)
	assert.Error(t, err)
}

func TestBaselineAndMerge(t *testing.T) {
	order := []domain.RatedItem{ranked("a", 9, 1), item("b", 8), ranked("c", 7, 5)}

	base := Baseline(order)
	assert.Equal(t, []domain.RankUpdate{
		{ItemID: "b", NewManualRank: 2},
		{ItemID: "c", NewManualRank: 3},
	}, base)

	plan, err := PlanMove(order, 2, 0)
	require.NoError(t, err)

	merged := Merge(base, plan.RankUpdates)
	assert.ElementsMatch(t, []domain.RankUpdate{
		{ItemID: "b", NewManualRank: 3},
		{ItemID: "c", NewManualRank: 1},
		{ItemID: "a", NewManualRank: 2},
	}, merged)

	assert.Equal(t, plan.RankUpdates, Merge(nil, plan.RankUpdates))
}

func ptr(i domain.RatedItem) *domain.RatedItem {
	return &i
}
