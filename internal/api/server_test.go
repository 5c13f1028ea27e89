package api

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/cache"
	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/search"
	"github.com/platelistapp/platelist-server/internal/service"
	"github.com/platelistapp/platelist-server/internal/sse"
	"github.com/platelistapp/platelist-server/internal/store/sqlite"
)

// testEnvelope mirrors both envelope shapes for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// testServer wraps the API server with the pieces tests poke at directly.
type testServer struct {
	*Server
	api        humatest.TestAPI
	store      *sqlite.Store
	sseManager *sse.Manager
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Name: "Platelist Test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// setupTestServer creates a server backed by a temp SQLite database, bleve
// index and in-memory cache. limiter may be nil.
func setupTestServer(t *testing.T, limiter *RateLimiter) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewSearchIndex(search.Options{DataPath: filepath.Join(dir, "search"), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	st.SetSearchIndexer(index)

	scoreCache, err := cache.Open(cache.Options{InMemory: true, TTL: time.Minute, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = scoreCache.Close() })

	sseManager := sse.NewManager(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go sseManager.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = sseManager.Shutdown(context.Background())
	})

	searchService := service.NewSearchService(index, st, logger)
	services := &Services{
		Restaurant:     service.NewRestaurantService(st, logger),
		Ranking:        service.NewRankingService(st, sseManager, scoreCache, logger),
		Taste:          service.NewTasteService(st, sseManager, scoreCache, logger),
		Recommendation: service.NewRecommendationService(st, searchService, scoreCache, nil, 50, logger),
		Search:         searchService,
	}

	s := NewServer(st, services, sseManager, limiter, testConfig(), logger)

	return &testServer{
		Server:     s,
		api:        humatest.Wrap(t, s.API()),
		store:      st,
		sseManager: sseManager,
	}
}

// decode unmarshals a response body into an envelope.
func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

// createRestaurant adds a restaurant through the API and returns its ID.
func (ts *testServer) createRestaurant(t *testing.T, name, cuisine, city string, tier int) string {
	t.Helper()
	resp := ts.api.Post("/api/v1/restaurants", map[string]any{
		"name":       name,
		"cuisine":    cuisine,
		"city":       city,
		"price_tier": tier,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[RestaurantResponse](t, resp.Body.Bytes()).Data.ID
}

// rate logs a rated visit through the API.
func (ts *testServer) rate(t *testing.T, userID, restaurantID string, rating float64) {
	t.Helper()
	resp := ts.api.Put("/api/v1/users/"+userID+"/ratings/"+restaurantID, map[string]any{
		"rating": rating,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}
