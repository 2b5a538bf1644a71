package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// IPRateLimiter отдельный token bucket на каждый адрес клиента
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	r        rate.Limit
	b        int
	idle     time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter r - запросов в секунду, b - размер burst
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*visitor),
		r:        r,
		b:        b,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// Allow расходует токен адреса. Заодно удаляет давно не появлявшихся клиентов.
func (l *IPRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.limiters[key] = v
	}
	v.lastSeen = now

	if len(l.limiters) > 1024 {
		for k, other := range l.limiters {
			if now.Sub(other.lastSeen) > l.idle {
				delete(l.limiters, k)
			}
		}
	}

	return v.limiter.AllowN(now, 1)
}

// RateLimit ограничивает частоту запросов с одного адреса
func RateLimit(limiter *IPRateLimiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				logger.Warn("%s %s - rate limit exceeded for ip=%s", r.Method, r.URL.Path, ip)
				w.Header().Set("Retry-After", "1")
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
