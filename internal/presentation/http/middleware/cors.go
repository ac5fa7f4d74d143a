package middleware

import (
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the desk client must always be able to send or read. Retried
// offline submissions carry Idempotency-Key, and the client tells a
// replayed receipt apart by X-Idempotency-Replayed.
var (
	deskRequestHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"}
	deskResponseHeaders = []string{
		"Content-Length",
		"X-Request-ID",
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware creates a CORS middleware for the front-desk client
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(deskCORSConfig(cfg))
}

func deskCORSConfig(cfg *config.CORSConfig) cors.Config {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		// desk UI dev servers
		origins = []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"}
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     withHeaders(append([]string{"Accept", "Origin"}, cfg.AllowedHeaders...), deskRequestHeaders),
		ExposeHeaders:    deskResponseHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// withHeaders appends every required header missing from have
func withHeaders(have, required []string) []string {
	out := append([]string(nil), have...)
	for _, r := range required {
		found := false
		for _, h := range out {
			if strings.EqualFold(h, r) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}
