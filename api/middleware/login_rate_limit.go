package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/responses"
	pkgerrors "github.com/ingenio-organico-app/ingenio-organico-app/pkg/errors"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
)

// rateLimiterStore is the counter backend for login throttling, satisfied by
// the redis client.
type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// LoginRateLimitPolicy bounds password attempts per client IP. Zero values
// disable the limiter.
type LoginRateLimitPolicy struct {
	MaxAttempts int64
	Window      time.Duration
}

func DefaultLoginRateLimitPolicy() LoginRateLimitPolicy {
	return LoginRateLimitPolicy{MaxAttempts: 10, Window: time.Minute}
}

// LoginRateLimit throttles repeated requests per client IP. When the counter
// backend fails the request is allowed through; login should not depend on
// redis being healthy.
func LoginRateLimit(store rateLimiterStore, policy LoginRateLimitPolicy, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || policy.MaxAttempts <= 0 || policy.Window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "ratelimit:login:ip:" + clientIP(r)
			count, err := store.IncrWithTTL(r.Context(), key, policy.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(r.Context(), "login rate limiter unavailable, allowing request")
				}
				next.ServeHTTP(w, r)
				return
			}

			if count > policy.MaxAttempts {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
