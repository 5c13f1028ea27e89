package providers

import (
	"context"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/logger"
	"github.com/platelistapp/platelist-server/internal/service"
)

func newTestInjector(t *testing.T, cacheTTL time.Duration) *do.RootScope {
	t.Helper()

	injector := do.New()
	do.ProvideValue(injector, &config.Config{
		Storage:   config.StorageConfig{DataPath: t.TempDir()},
		Recommend: config.RecommendConfig{CacheTTL: cacheTTL, MaxResults: 10},
	})
	do.ProvideValue(injector, logger.Discard())
	do.Provide(injector, ProvideSSEManager)
	do.Provide(injector, ProvideStore)
	do.Provide(injector, ProvideSearchIndex)
	do.Provide(injector, ProvideSearchService)
	do.Provide(injector, ProvideCache)
	do.Provide(injector, ProvideCuisineTables)
	do.Provide(injector, ProvideRestaurantService)
	do.Provide(injector, ProvideRankingService)
	do.Provide(injector, ProvideTasteService)
	do.Provide(injector, ProvideRecommendationService)
	do.Provide(injector, ProvideCacheGCJob)

	t.Cleanup(func() { _ = injector.Shutdown() })
	return injector
}

func TestProviders_WireServices(t *testing.T) {
	injector := newTestInjector(t, time.Minute)

	restaurants := do.MustInvoke[*service.RestaurantService](injector)
	recommendations := do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*CacheGCJob](injector)

	cacheHandle := do.MustInvoke[*CacheHandle](injector)
	require.NotNil(t, cacheHandle.Cache)
	assert.True(t, cacheHandle.Enabled())

	ctx := context.Background()
	created, err := restaurants.Create(ctx, service.CreateRestaurantInput{Name: "Pho Saigon", Cuisine: "Vietnamese", City: "Houston", PriceTier: 1})
	require.NoError(t, err)

	// Restaurant writes reach the search index through the store hook.
	searchService := do.MustInvoke[*service.SearchService](injector)
	count, err := searchService.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	recs, err := recommendations.Recommend(ctx, "u1", service.RecommendParams{})
	require.NoError(t, err)
	require.Len(t, recs.Items, 1)
	assert.Equal(t, created.ID, recs.Items[0].ID)
}

func TestProvideCache_DisabledYieldsNilInterfaces(t *testing.T) {
	injector := newTestInjector(t, 0)

	cacheHandle := do.MustInvoke[*CacheHandle](injector)
	assert.Nil(t, cacheHandle.Cache)
	assert.Nil(t, cacheInvalidator(cacheHandle))
	assert.Nil(t, resultCache(cacheHandle))
	assert.NoError(t, cacheHandle.Shutdown())

	// The GC job starts as a no-op.
	job := do.MustInvoke[*CacheGCJob](injector)
	assert.NoError(t, job.Shutdown())
}

func TestProvideRateLimiter(t *testing.T) {
	injector := do.New()
	do.ProvideValue(injector, &config.Config{RateLimit: config.RateLimitConfig{Enabled: false}})
	do.ProvideValue(injector, logger.Discard())
	do.Provide(injector, ProvideRateLimiter)

	handle := do.MustInvoke[*RateLimiterHandle](injector)
	assert.Nil(t, handle.RateLimiter)
	assert.NoError(t, handle.Shutdown())
}
