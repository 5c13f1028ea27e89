package providers

import (
	"github.com/samber/do/v2"

	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/logger"
	"github.com/platelistapp/platelist-server/internal/service"
)

// cacheInvalidator returns a nil interface when caching is disabled, never a typed nil.
func cacheInvalidator(h *CacheHandle) service.CacheInvalidator {
	if h.Cache == nil {
		return nil
	}
	return h.Cache
}

func resultCache(h *CacheHandle) service.ResultCache {
	if h.Cache == nil {
		return nil
	}
	return h.Cache
}

// ProvideRestaurantService provides the restaurant catalogue service.
func ProvideRestaurantService(i do.Injector) (*service.RestaurantService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRestaurantService(storeHandle.Store, log.Logger), nil
}

// ProvideRankingService provides the ranking service.
func ProvideRankingService(i do.Injector) (*service.RankingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRankingService(storeHandle.Store, sseHandle.Manager, cacheInvalidator(cacheHandle), log.Logger), nil
}

// ProvideTasteService provides the taste questionnaire service.
func ProvideTasteService(i do.Injector) (*service.TasteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTasteService(storeHandle.Store, sseHandle.Manager, cacheInvalidator(cacheHandle), log.Logger), nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	tables := do.MustInvoke[*cuisine.Tables](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(
		storeHandle.Store,
		searchService,
		resultCache(cacheHandle),
		tables,
		cfg.Recommend.MaxResults,
		log.Logger,
	), nil
}
