// Package di provides dependency injection configuration for the Platelist server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/di/providers"
	"github.com/platelistapp/platelist-server/internal/logger"
	"github.com/platelistapp/platelist-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Recommendation inputs
	do.Provide(injector, providers.ProvideCache)
	do.Provide(injector, providers.ProvideCuisineTables)

	// Business services
	do.Provide(injector, providers.ProvideRestaurantService)
	do.Provide(injector, providers.ProvideRankingService)
	do.Provide(injector, providers.ProvideTasteService)
	do.Provide(injector, providers.ProvideRecommendationService)

	// Workers
	do.Provide(injector, providers.ProvideCacheGCJob)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*providers.CacheHandle](injector)
	_ = do.MustInvoke[*cuisine.Tables](injector)

	// Business services
	_ = do.MustInvoke[*service.RestaurantService](injector)
	_ = do.MustInvoke[*service.RankingService](injector)
	_ = do.MustInvoke[*service.TasteService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)

	// Workers
	_ = do.MustInvoke[*providers.CacheGCJob](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
