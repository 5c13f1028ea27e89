package providers

import (
	"github.com/samber/do/v2"

	"github.com/platelistapp/platelist-server/internal/cache"
	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/cuisine"
	"github.com/platelistapp/platelist-server/internal/logger"
)

// CacheHandle wraps the recommendation cache. Cache is nil when caching is disabled.
type CacheHandle struct {
	*cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	if h.Cache == nil {
		return nil
	}
	return h.Close()
}

// ProvideCache provides the Badger-backed recommendation cache.
func ProvideCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Recommend.CacheTTL <= 0 {
		log.Info("Recommendation cache disabled")
		return &CacheHandle{}, nil
	}

	c, err := cache.Open(cache.Options{
		Path:   cfg.Storage.CachePath(),
		TTL:    cfg.Recommend.CacheTTL,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &CacheHandle{Cache: c}, nil
}

// ProvideCuisineTables provides the cuisine relation and vibe tables.
func ProvideCuisineTables(i do.Injector) (*cuisine.Tables, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	tables, err := cuisine.LoadTables(cfg.Recommend.TablesPath)
	if err != nil {
		return nil, err
	}
	if cfg.Recommend.TablesPath != "" {
		log.Info("Loaded cuisine tables", "path", cfg.Recommend.TablesPath)
	}
	return tables, nil
}
