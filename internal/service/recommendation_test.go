package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/cache"
	"github.com/platelistapp/platelist-server/internal/domain"
	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/store/sqlite"
)

type recommendFixture struct {
	store *sqlite.Store
	svc   *RecommendationService
	ids   map[string]string
}

// setupRecommend seeds two Italian visits for u1 in Austin and three
// unvisited restaurants, one of which u1's friend u2 rated.
func setupRecommend(t *testing.T, withCache bool) *recommendFixture {
	t.Helper()
	ctx := context.Background()

	st := newTestStore(t)
	index, err := search.NewSearchIndex(search.Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	st.SetSearchIndexer(index)

	var resultCache ResultCache
	if withCache {
		c, err := cache.Open(cache.Options{InMemory: true, TTL: time.Minute})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		resultCache = c
	}

	restaurants := NewRestaurantService(st, testLogger())
	rankingSvc := NewRankingService(st, nil, nil, testLogger())

	f := &recommendFixture{store: st, ids: map[string]string{}}
	for _, seed := range []struct {
		name, cuisine, city string
		tier                int
	}{
		{"Luigi's", "Italian", "Austin", 2},
		{"Pasta Place", "italian", "austin", 2},
		{"Trattoria Nuova", "Italian", "Austin", 2},
		{"Burger Shack", "American", "Dallas", 4},
		{"Thai Orchid", "Thai", "Austin", 1},
	} {
		f.ids[seed.name] = createRestaurant(t, restaurants, seed.name, seed.cuisine, seed.city, seed.tier).ID
	}

	rate := func(user, name string, rating float64) {
		_, err := rankingSvc.RateRestaurant(ctx, user, f.ids[name], RateInput{Rating: domain.Float(rating)})
		require.NoError(t, err)
	}
	rate("u1", "Luigi's", 9.0)
	rate("u1", "Pasta Place", 8.0)
	rate("u2", "Thai Orchid", 9.0)
	require.NoError(t, st.AddFriendship(ctx, "u1", "u2"))

	f.svc = NewRecommendationService(st, NewSearchService(index, st, testLogger()), resultCache, nil, 10, testLogger())
	return f
}

func names(items []domain.ScoredCandidate) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestRecommendationService_Recommend(t *testing.T) {
	f := setupRecommend(t, false)

	recs, err := f.svc.Recommend(context.Background(), "u1", RecommendParams{})
	require.NoError(t, err)

	require.Len(t, recs.Items, 3, "visited restaurants are never recommended")
	assert.Equal(t, "Trattoria Nuova", recs.Items[0].Name)
	assert.Equal(t, "Burger Shack", recs.Items[2].Name)
	assert.Equal(t, []string{
		"Matches your taste for Italian",
		"Right in your price range",
		"In Austin, where you often eat",
	}, recs.Items[0].MatchFactors)
	assert.Equal(t, 83, recs.Items[0].ConfidenceScore)

	assert.Contains(t, recs.Items[1].MatchFactors, "A friend rated it 9.0")
	assert.InDelta(t, 1.7, recs.Model.CuisineAffinity["Italian"], 1e-9)
	assert.False(t, recs.Cached)
}

func TestRecommendationService_Filters(t *testing.T) {
	f := setupRecommend(t, false)
	ctx := context.Background()

	recs, err := f.svc.Recommend(ctx, "u1", RecommendParams{City: "austin"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Trattoria Nuova", "Thai Orchid"}, names(recs.Items))

	recs, err = f.svc.Recommend(ctx, "u1", RecommendParams{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Trattoria Nuova"}, names(recs.Items))
}

func TestRecommendationService_QueryUsesSearch(t *testing.T) {
	f := setupRecommend(t, false)

	recs, err := f.svc.Recommend(context.Background(), "u1", RecommendParams{Query: "orchid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai Orchid"}, names(recs.Items))

	// Visited restaurants found by search are still excluded.
	recs, err = f.svc.Recommend(context.Background(), "u1", RecommendParams{Query: "luigi's"})
	require.NoError(t, err)
	assert.Empty(t, recs.Items)
}

func TestRecommendationService_CachesIdenticalRequests(t *testing.T) {
	f := setupRecommend(t, true)
	ctx := context.Background()

	first, err := f.svc.Recommend(ctx, "u1", RecommendParams{})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := f.svc.Recommend(ctx, "u1", RecommendParams{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, names(first.Items), names(second.Items))
	assert.Equal(t, first.Items[0].MatchFactors, second.Items[0].MatchFactors)

	// A new rating changes the inputs and therefore the key.
	_, err = NewRankingService(f.store, nil, nil, testLogger()).
		RateRestaurant(ctx, "u1", f.ids["Thai Orchid"], RateInput{Rating: domain.Float(7.5)})
	require.NoError(t, err)

	third, err := f.svc.Recommend(ctx, "u1", RecommendParams{})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Len(t, third.Items, 2)
}

func TestRecommendationService_ScoreAdHoc(t *testing.T) {
	svc := NewRecommendationService(nil, nil, nil, nil, 0, testLogger())

	empty := svc.ScoreAdHoc(nil, nil, nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	scored := svc.ScoreAdHoc(
		[]domain.RatedItem{{ID: "r1", Cuisine: "Mexican", Rating: domain.Float(9)}},
		[]domain.Candidate{{ID: "c1", Cuisine: "mexican"}, {ID: "c2"}},
		nil,
	)
	require.Len(t, scored, 2)
	assert.Equal(t, "c1", scored[0].ID)
	assert.Equal(t, 50, scored[1].ConfidenceScore)
	assert.Empty(t, scored[1].MatchFactors)
}
