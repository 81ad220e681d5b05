package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UsageStore interface {
	IncrementUsage(keyID int64, orgID int64) (int64, error)
	OrgUsageToday(orgID int64) (int64, error)
	TouchLastUsed(keyID int64) error
}

// DailyQuota counts the request and rejects it once the organization
// has spent its plan's daily request limit. Runs after RequireKey.
func DailyQuota(store UsageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pr := GetPrincipal(c)
		if pr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}

		if _, err := store.IncrementUsage(pr.Key.ID, pr.Org.ID); err != nil {
			slog.Error("error recording usage", "error", err, "key_id", pr.Key.ID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := store.TouchLastUsed(pr.Key.ID); err != nil {
			slog.Error("error updating key last_used_at", "error", err, "key_id", pr.Key.ID)
		}

		if !pr.Plan.Unlimited() {
			used, err := store.OrgUsageToday(pr.Org.ID)
			if err != nil {
				slog.Error("error reading usage", "error", err, "org_id", pr.Org.ID)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
				return
			}

			if used > int64(pr.Plan.RequestLimit) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily request limit reached"})
				return
			}
		}

		c.Next()
	}
}
