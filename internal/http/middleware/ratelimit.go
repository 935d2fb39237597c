package middlewarex

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimit is a fixed-window counter in Redis keyed by client IP and
// route group. When Redis is unreachable the request is allowed through;
// throttling is a guard rail, not an availability dependency.
func RateLimit(rdb *redis.Client, group string, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || perMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			key := fmt.Sprintf("ratelimit:%s:%s:%s", group, clientIP(r), time.Now().UTC().Format("200601021504"))

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limit: redis unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, time.Minute)
			}
			if count > int64(perMinute) {
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error":   "too many requests, slow down",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys on RemoteAddr only. Behind a trusted proxy the RealIP
// middleware has already rewritten it; reading forwarding headers here
// would let clients pick their own rate-limit bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
