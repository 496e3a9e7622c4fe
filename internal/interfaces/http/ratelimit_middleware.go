package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/obrasoft/obra-api/internal/application/dto"
)

type rateLimiter struct {
	requests map[string]*clientWindow
	mu       sync.Mutex
	limit    int
	window   time.Duration
}

type clientWindow struct {
	count     int
	resetTime time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		requests: make(map[string]*clientWindow),
		limit:    limit,
		window:   window,
	}
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup()
		}
	}()
	return rl
}

// RateLimiter limita requests por (tier, organización) en memoria con ventana
// fija. Las rutas públicas (sin token) se acotan por IP. Estado por proceso:
// con varias réplicas el tope efectivo es limit × réplicas.
func RateLimiter(tier string, limit int, window time.Duration) fiber.Handler {
	rl := newRateLimiter(limit, window)
	return func(c *fiber.Ctx) error {
		key := GetOrganizationID(c)
		if key == "" {
			key = c.IP()
		}
		key = tier + ":" + key

		rl.mu.Lock()
		now := time.Now()
		cw, exists := rl.requests[key]
		if !exists || now.After(cw.resetTime) {
			rl.requests[key] = &clientWindow{count: 1, resetTime: now.Add(rl.window)}
			rl.mu.Unlock()
			return c.Next()
		}
		if cw.count >= rl.limit {
			retry := cw.resetTime.Sub(now)
			rl.mu.Unlock()
			c.Set("Retry-After", retry.Round(time.Second).String())
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMIT",
				Message: "demasiadas solicitudes, intente más tarde",
			})
		}
		cw.count++
		rl.mu.Unlock()
		return c.Next()
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	for key, cw := range rl.requests {
		if now.After(cw.resetTime) {
			delete(rl.requests, key)
		}
	}
}
