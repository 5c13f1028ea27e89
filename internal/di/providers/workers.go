package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/platelistapp/platelist-server/internal/logger"
)

// cacheGCInterval is how often the recommendation cache reclaims value-log space.
const cacheGCInterval = 10 * time.Minute

// CacheGCJob runs periodic garbage collection on the recommendation cache.
type CacheGCJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *CacheGCJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideCacheGCJob provides the periodic cache GC job. It is a no-op when caching is disabled.
func ProvideCacheGCJob(i do.Injector) (*CacheGCJob, error) {
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	if cacheHandle.Cache == nil {
		return &CacheGCJob{cancel: cancel}, nil
	}

	go func() {
		ticker := time.NewTicker(cacheGCInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				start := time.Now()
				cacheHandle.RunGC()
				log.Debug("Cache GC completed", "duration", time.Since(start))
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Cache GC job started", "interval", cacheGCInterval)

	return &CacheGCJob{cancel: cancel}, nil
}
