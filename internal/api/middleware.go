package api

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/platelistapp/platelist-server/internal/errors"
	"github.com/platelistapp/platelist-server/internal/metrics"
)

// requestLogger logs each request and records its latency under the matched
// route pattern so metric cardinality stays bounded.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.RecordAPIRequest(r.Method, route, status, duration)

			logger.Debug("request",
				"method", r.Method,
				"route", route,
				"status", status,
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// rateLimited is a huma operation middleware that limits requests per client IP.
// Exceeding the limit returns 429 Too Many Requests.
func (s *Server) rateLimited(ctx huma.Context, next func(huma.Context)) {
	if s.rateLimiter == nil {
		next(ctx)
		return
	}

	key := clientIP(ctx.RemoteAddr())
	if !s.rateLimiter.Allow(key) {
		s.logger.Warn("Rate limit exceeded", "ip", key, "path", ctx.URL().Path)
		metrics.APIRateLimited.Inc()
		//nolint:errcheck // Response already failed, nothing more to report.
		_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "too many requests",
			domainerrors.RateLimited("too many requests, please try again later"))
		return
	}

	next(ctx)
}

// clientIP strips the port from a remote address. RealIP has already
// replaced RemoteAddr with X-Forwarded-For or X-Real-IP when present.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
