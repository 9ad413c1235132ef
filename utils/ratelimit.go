package utils

import (
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/kataras/iris/v12"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP, expiring buckets that
// have not been seen for a while.
type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{r: r, b: b}
	go l.cleanupLoop()
	return l
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := l.ips.Load(ip); ok {
		c := v.(*rateLimitClient)
		c.lastSeen = time.Now()
		return c.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.ips.Load(ip); ok {
		c := v.(*rateLimitClient)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(l.r, l.b)
	l.ips.Store(ip, &rateLimitClient{limiter: limiter, lastSeen: time.Now()})
	return limiter
}

func (l *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		l.ips.Range(func(key, value interface{}) bool {
			c := value.(*rateLimitClient)
			if time.Since(c.lastSeen) > 3*time.Minute {
				l.ips.Delete(key)
			}
			return true
		})
	}
}

func (l *IPRateLimiter) Handler() iris.Handler {
	return func(ctx iris.Context) {
		if !l.getLimiter(ClientIP(ctx)).Allow() {
			ctx.StopWithJSON(iris.StatusTooManyRequests, iris.Map{
				"error":   "rate_limited",
				"message": "too many requests, slow down",
			})
			return
		}
		ctx.Next()
	}
}

// AuthRateLimiter builds the limiter applied to register/login, tunable via
// AUTH_RATE_LIMIT_RPS and AUTH_RATE_LIMIT_BURST.
func AuthRateLimiter() iris.Handler {
	rps := envFloat("AUTH_RATE_LIMIT_RPS", 5)
	burst := envInt("AUTH_RATE_LIMIT_BURST", 20)
	return NewIPRateLimiter(rate.Limit(rps), burst).Handler()
}

func ClientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(ctx.RemoteAddr())
	if err != nil {
		return ctx.RemoteAddr()
	}
	return ip
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
