package api

import (
	"github.com/platelistapp/platelist-server/internal/config"
	"github.com/platelistapp/platelist-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates the per-IP limiter for recommendation routes.
// Returns nil when rate limiting is disabled.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return ratelimit.New(cfg.RPS, burst)
}
