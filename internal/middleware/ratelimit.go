package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// minIdleTTL is the shortest time a caller's bucket is kept after its last request.
const minIdleTTL = time.Minute

// RateLimit returns per-caller token-bucket rate limiting. A caller is the API
// key stored by APIKeyAuth, or the client IP when the API runs without keys.
//
// Token bucket algorithm: each caller's bucket refills at rps tokens/sec up to
// burst. Every request spends one token, and an empty bucket yields 429 before
// the search runs, so a flood of requests cannot turn into a flood of
// completion calls.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters := newLimiterSet(rps, burst, time.Now)

	return func(c *gin.Context) {
		if !limiters.allow(callerID(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

func callerID(c *gin.Context) string {
	// GetString returns "" when the key is absent, so no type assertion is needed
	if key := c.GetString(ContextKeyAPIKey); key != "" {
		return "key:" + key
	}
	return "ip:" + c.ClientIP()
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one bucket per caller. Keyed by IP the set of callers is
// unbounded, so buckets idle for longer than ttl are swept. A bucket idle that
// long has refilled to burst, so dropping it and starting fresh changes nothing.
//
// sync.Mutex guards the map: gin serves each request on its own goroutine, and
// a plain map with short critical sections is simpler with a lock than a channel.
type limiterSet struct {
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
}

func newLimiterSet(rps float64, burst int, now func() time.Time) *limiterSet {
	ttl := time.Duration(float64(burst) / rps * float64(time.Second))
	if ttl < minIdleTTL {
		ttl = minIdleTTL
	}
	return &limiterSet{
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		now:       now,
		entries:   make(map[string]*limiterEntry),
		lastSweep: now(),
	}
}

func (s *limiterSet) allow(caller string) bool {
	now := s.now()

	s.mu.Lock()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	entry, ok := s.entries[caller]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.entries[caller] = entry
	}
	entry.lastSeen = now
	s.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

// sweep drops idle entries. Caller holds mu.
func (s *limiterSet) sweep(now time.Time) {
	for caller, entry := range s.entries {
		if now.Sub(entry.lastSeen) >= s.ttl {
			delete(s.entries, caller)
		}
	}
	s.lastSweep = now
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
