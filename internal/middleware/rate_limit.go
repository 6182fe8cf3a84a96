package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is the minimum idle time before a key's limiter is dropped.
const limiterIdleTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedRateLimiter struct {
	limiters  map[string]*keyedLimiter
	mu        sync.Mutex
	r         rate.Limit // jumlah request per detik
	b         int        // burst (kapasitas kantong)
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters:  make(map[string]*keyedLimiter),
		r:         r,
		b:         b,
		idleTTL:   idleTTLFor(r, b),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// idleTTLFor waits at least until an idle bucket is full again, so dropping
// it never hands out extra tokens.
func idleTTLFor(r rate.Limit, b int) time.Duration {
	ttl := limiterIdleTTL
	if r > 0 && r != rate.Inf {
		refill := time.Duration(float64(b) / float64(r) * float64(time.Second))
		ttl = max(ttl, refill)
	}
	return ttl
}

func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) >= k.idleTTL {
		k.sweep(now)
	}

	entry, exists := k.limiters[key]
	if !exists {
		entry = &keyedLimiter{limiter: rate.NewLimiter(k.r, k.b)}
		k.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// sweep drops limiters idle for longer than idleTTL. Caller holds mu.
func (k *KeyedRateLimiter) sweep(now time.Time) {
	for key, entry := range k.limiters {
		if now.Sub(entry.lastSeen) >= k.idleTTL {
			delete(k.limiters, key)
		}
	}
	k.lastSweep = now
}

var ErrTooManyRequests = apperror.New(
	apperror.CodeTooManyReqs,
	"Terlalu banyak permintaan, coba lagi nanti",
	http.StatusTooManyRequests,
)

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			abortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByUser: r = request per detik, b = burst. Anonymous requests pass.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := contextutil.GetUserID(c.Request.Context())
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			abortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
