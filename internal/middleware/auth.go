package middleware

import (
	"log/slog"
	"net/http"
	"newswire/internal/model"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey carries the key token on every authenticated request.
const HeaderAPIKey = "X-API-Key"

const principalKey = "principal"

type PrincipalStore interface {
	GetByToken(token string) (*model.APIKey, *model.Organization, *model.BillingPlan, error)
}

// Principal is the authenticated caller: the key that signed the
// request plus the organization and plan it resolves to.
type Principal struct {
	Key  *model.APIKey
	Org  *model.Organization
	Plan *model.BillingPlan
}

// RequireKey authenticates the request from the X-API-Key header and
// stores the principal on the context for the rest of the chain.
func RequireKey(store PrincipalStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAPIKey)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}

		key, org, plan, err := store.GetByToken(token)
		if err != nil {
			slog.Error("error resolving api key", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if key == nil || !key.Active() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Set(principalKey, &Principal{Key: key, Org: org, Plan: plan})
		c.Next()
	}
}

// GetPrincipal returns the principal set by RequireKey, or nil on
// routes that skipped authentication.
func GetPrincipal(c *gin.Context) *Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}

	p, ok := v.(*Principal)
	if !ok {
		return nil
	}

	return p
}
