package httpserver

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/service/ratelimiter"
)

// RateLimitMiddleware applies the shared token bucket per client IP. The
// limiter fails open, so a Redis outage degrades to unlimited rather than
// rejecting traffic.
func RateLimitMiddleware(limiter ratelimiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			allowed, retryAfter, _ := limiter.Allow(r.Context(), clientIP(r), 1)
			if !allowed {
				secs := int(retryAfter.Seconds())
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				writeError(w, r, fmt.Errorf("%w: too many requests", domain.ErrRateLimited), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
