package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether the client identified by key may make another
// request now.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// MemoryLimiter provides rate limiting using a sliding window algorithm.
// Counts are per process.
type MemoryLimiter struct {
	requests int           // Maximum requests per window
	window   time.Duration // Window duration
	clients  map[string]*clientWindow
	mu       sync.RWMutex
	stop     chan struct{}
	once     sync.Once
}

type clientWindow struct {
	timestamps []time.Time
	mu         sync.Mutex
}

func normalizeLimits(requests, windowSeconds int) (int, time.Duration) {
	if requests <= 0 {
		requests = 100 // Default
	}
	if windowSeconds <= 0 {
		windowSeconds = 60 // Default
	}
	return requests, time.Duration(windowSeconds) * time.Second
}

// NewMemoryLimiter creates a new in-process rate limiter
func NewMemoryLimiter(requests int, windowSeconds int) *MemoryLimiter {
	requests, window := normalizeLimits(requests, windowSeconds)

	rl := &MemoryLimiter{
		requests: requests,
		window:   window,
		clients:  make(map[string]*clientWindow),
		stop:     make(chan struct{}),
	}

	// Start cleanup goroutine to remove old entries
	go rl.cleanup(time.Minute)

	return rl
}

// Close stops the cleanup goroutine.
func (rl *MemoryLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup removes expired entries periodically
func (rl *MemoryLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := time.Now()
		for key, client := range rl.clients {
			client.mu.Lock()
			if len(client.timestamps) == 0 ||
				now.Sub(client.timestamps[len(client.timestamps)-1]) > rl.window*2 {
				// No recent activity, remove client
				delete(rl.clients, key)
			}
			client.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}

// Allow checks if a request from the given key should be allowed
func (rl *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	rl.mu.RLock()
	client, exists := rl.clients[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		// Double-check after acquiring write lock
		if client, exists = rl.clients[key]; !exists {
			client = &clientWindow{
				timestamps: make([]time.Time, 0, rl.requests),
			}
			rl.clients[key] = client
		}
		rl.mu.Unlock()
	}

	client.mu.Lock()
	defer client.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.window)

	// Drop timestamps outside the window
	valid := len(client.timestamps)
	for i, ts := range client.timestamps {
		if ts.After(windowStart) {
			valid = i
			break
		}
	}
	client.timestamps = client.timestamps[valid:]

	if len(client.timestamps) >= rl.requests {
		// The oldest request in the window frees the next slot
		return Decision{
			Limit: rl.requests,
			Reset: client.timestamps[0].Add(rl.window),
		}, nil
	}

	client.timestamps = append(client.timestamps, now)
	return Decision{
		Allowed:   true,
		Limit:     rl.requests,
		Remaining: rl.requests - len(client.timestamps),
		Reset:     now.Add(rl.window),
	}, nil
}

// RedisLimiter counts requests in fixed windows shared by every API process.
type RedisLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	prefix   string
}

func NewRedisLimiter(client *redis.Client, requests int, windowSeconds int) *RedisLimiter {
	requests, window := normalizeLimits(requests, windowSeconds)
	return &RedisLimiter{
		client:   client,
		requests: requests,
		window:   window,
		prefix:   "planit:ratelimit:",
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.window)
	redisKey := rl.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.PExpire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incr.Val())
	remaining := rl.requests - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= rl.requests,
		Limit:     rl.requests,
		Remaining: remaining,
		Reset:     windowStart.Add(rl.window),
	}, nil
}

// RateLimit applies the limiter per authenticated user, falling back to the
// client IP. A limiter error lets the request through.
func RateLimit(limiter Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + getClientIP(r)
			if userID := GetUserID(r.Context()); userID != uuid.Nil {
				key = "user:" + userID.String()
			}

			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			// Set rate limit headers
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(decision.Reset).Seconds())+1, 10))
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded", "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (set by proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the list (original client)
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP header (set by some proxies)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
