package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/domain"
	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/ranking"
	"github.com/platelistapp/platelist-server/internal/sse"
)

type rankingFixture struct {
	svc         *RankingService
	events      *recordingEmitter
	invalidator *countingInvalidator
	ids         map[string]string // name -> restaurant ID
}

// setupRanking logs four visits for user u1 rated 9.5, 8.0, 7.0, 6.0.
func setupRanking(t *testing.T) *rankingFixture {
	t.Helper()
	st := newTestStore(t)
	restaurants := NewRestaurantService(st, testLogger())

	f := &rankingFixture{
		events:      &recordingEmitter{},
		invalidator: &countingInvalidator{},
		ids:         map[string]string{},
	}
	f.svc = NewRankingService(st, f.events, f.invalidator, testLogger())

	base := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	for i, seed := range []struct {
		name   string
		rating float64
	}{{"A", 9.5}, {"B", 8.0}, {"C", 7.0}, {"D", 6.0}} {
		r := createRestaurant(t, restaurants, seed.name, "Italian", "Austin", 2)
		f.ids[seed.name] = r.ID
		_, err := f.svc.RateRestaurant(context.Background(), "u1", r.ID, RateInput{
			Rating:    domain.Float(seed.rating),
			VisitedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	f.events.events = nil
	return f
}

func (f *rankingFixture) order(t *testing.T) []string {
	t.Helper()
	order, err := f.svc.GetRanking(context.Background(), "u1")
	require.NoError(t, err)
	names := make([]string, len(order))
	for i, item := range order {
		for name, id := range f.ids {
			if id == item.ID {
				names[i] = name
			}
		}
	}
	return names
}

func TestRankingService_GetRankingByRating(t *testing.T) {
	f := setupRanking(t)
	assert.Equal(t, []string{"A", "B", "C", "D"}, f.order(t))
}

func TestRankingService_ApplyMovePersistsContiguousRanks(t *testing.T) {
	f := setupRanking(t)
	ctx := context.Background()

	res, err := f.svc.ApplyMove(ctx, "u1", MoveInput{From: 3, To: 0})
	require.NoError(t, err)

	assert.Equal(t, []string{"D", "A", "B", "C"}, f.order(t))
	assert.True(t, res.RatingConflict, "6.0 cannot sit above 9.5")
	require.Len(t, res.Plan.RatingBounds, 1)
	assert.Equal(t, ranking.Bounds{Min: 9.6, Max: 10.0}, ranking.Bounds{
		Min: res.Plan.RatingBounds[0].RequiredMinRating,
		Max: res.Plan.RatingBounds[0].RequiredMaxRating,
	})

	order, err := f.svc.GetRanking(ctx, "u1")
	require.NoError(t, err)
	for i, item := range order {
		require.NotNil(t, item.ManualRank)
		assert.Equal(t, i+1, *item.ManualRank)
	}

	assert.Equal(t, []sse.EventType{sse.EventRankingReordered}, f.events.types())
	assert.Contains(t, f.invalidator.users, "u1")

	// A second move on top of the stored ranks keeps them contiguous.
	_, err = f.svc.ApplyMove(ctx, "u1", MoveInput{From: 0, To: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D", "C"}, f.order(t))
}

func TestRankingService_ApplyMoveSameIndexIsNoop(t *testing.T) {
	f := setupRanking(t)

	res, err := f.svc.ApplyMove(context.Background(), "u1", MoveInput{From: 1, To: 1})
	require.NoError(t, err)

	assert.Empty(t, res.Plan.RankUpdates)
	assert.NotEmpty(t, res.Plan.ID)
	assert.Empty(t, f.events.types())
}

func TestRankingService_StaleViewConflicts(t *testing.T) {
	f := setupRanking(t)
	ctx := context.Background()

	view := []string{f.ids["A"], f.ids["B"], f.ids["C"], f.ids["D"]}
	_, err := f.svc.ApplyMove(ctx, "u1", MoveInput{From: 3, To: 0, View: view})
	require.NoError(t, err)

	// Same view again is now stale.
	_, err = f.svc.ApplyMove(ctx, "u1", MoveInput{From: 1, To: 2, View: view})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeConflict, domainErr.Code)
}

func TestRankingService_InvalidIndex(t *testing.T) {
	f := setupRanking(t)

	_, err := f.svc.PreviewMove(context.Background(), "u1", MoveInput{From: 0, To: 4})
	var idxErr *ranking.InvalidIndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, "to", idxErr.Name)
	assert.True(t, errors.Is(err, &domainerrors.Error{Code: domainerrors.CodeInvalidIndex}))
}

func TestRankingService_PreviewDoesNotPersist(t *testing.T) {
	f := setupRanking(t)

	plan, err := f.svc.PreviewMove(context.Background(), "u1", MoveInput{From: 0, To: 3})
	require.NoError(t, err)
	assert.Len(t, plan.RankUpdates, 4)

	assert.Equal(t, []string{"A", "B", "C", "D"}, f.order(t))
	assert.Empty(t, f.events.types())
}

func TestRankingService_Bounds(t *testing.T) {
	f := setupRanking(t)

	b, err := f.svc.Bounds(context.Background(), "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, ranking.Bounds{Min: 7.1, Max: 9.4}, b)

	_, err = f.svc.Bounds(context.Background(), "u1", 9)
	assert.Error(t, err)
}

func TestRankingService_RateRestaurant(t *testing.T) {
	f := setupRanking(t)
	ctx := context.Background()

	_, err := f.svc.RateRestaurant(ctx, "u1", f.ids["D"], RateInput{Rating: domain.Float(10.5)})
	assert.True(t, errors.Is(err, domainerrors.Validation("")))

	_, err = f.svc.RateRestaurant(ctx, "u1", "rest-missing", RateInput{Rating: domain.Float(5)})
	assert.True(t, errors.Is(err, domainerrors.NotFound("")))

	rating, err := f.svc.RateRestaurant(ctx, "u1", f.ids["D"], RateInput{Rating: domain.Float(9.9), Notes: "better second time"})
	require.NoError(t, err)
	assert.Equal(t, 9.9, *rating.Rating)
	assert.Equal(t, []string{"D", "A", "B", "C"}, f.order(t))
	assert.Equal(t, []sse.EventType{sse.EventRatingUpdated}, f.events.types())

	// Clearing the rating removes it from the ranking.
	_, err = f.svc.RateRestaurant(ctx, "u1", f.ids["D"], RateInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, f.order(t))
}

func TestRankingService_RemoveRating(t *testing.T) {
	f := setupRanking(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RemoveRating(ctx, "u1", f.ids["B"]))
	assert.Equal(t, []string{"A", "C", "D"}, f.order(t))

	err := f.svc.RemoveRating(ctx, "u1", f.ids["B"])
	assert.True(t, errors.Is(err, domainerrors.NotFound("")))
}
