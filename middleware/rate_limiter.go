package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP may stay quiet before its limiter is dropped.
// A bucket idle that long has refilled completely, so dropping it changes nothing.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters  map[string]*clientLimiter
	mu        sync.Mutex
	perMin    int
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 1
	}
	return &rateLimiterStore{
		limiters:  make(map[string]*clientLimiter),
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		s.sweep(now)
	}

	cl, exists := s.limiters[ip]
	if !exists {
		// perMin requests per minute, all of which may arrive in one burst.
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin),
		}
		s.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops limiters idle for longer than limiterIdleTTL. Callers hold s.mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	for ip, cl := range s.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware limits requests per client IP to perMin per minute.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
