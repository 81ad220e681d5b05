package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	mu      sync.Mutex
	clients = make(map[string]*client)
)

// RateLimit enforces the caller's plan rate, tracked per key token.
// Limiters are rebuilt when a plan change alters the rate or burst.
// Runs after RequireKey.
func RateLimit() gin.HandlerFunc {
	go cleanupClients()

	return func(c *gin.Context) {
		pr := GetPrincipal(c)
		if pr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}

		limit := rate.Limit(pr.Plan.RateLimit)

		mu.Lock()
		cl, ok := clients[pr.Key.Token]
		if !ok || cl.limiter.Limit() != limit || cl.limiter.Burst() != pr.Plan.Burst {
			cl = &client{limiter: rate.NewLimiter(limit, pr.Plan.Burst)}
			clients[pr.Key.Token] = cl
		}
		cl.lastSeen = time.Now()
		mu.Unlock()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}

// cleanupClients drops limiters for keys not seen in five minutes.
func cleanupClients() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for token, cl := range clients {
			if time.Since(cl.lastSeen) > 5*time.Minute {
				delete(clients, token)
			}
		}
		mu.Unlock()
	}
}
