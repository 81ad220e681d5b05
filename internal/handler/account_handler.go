package handler

import (
	"log/slog"
	"net/http"
	"newswire/internal/middleware"
	"newswire/internal/model"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanStore interface {
	GetPlans() ([]model.BillingPlan, error)
}

type KeyStore interface {
	Create(key *model.APIKey) error
	ListByOrg(orgID int64) ([]model.APIKey, error)
	Revoke(id int64, orgID int64) (bool, error)
	OrgUsageToday(orgID int64) (int64, error)
	UsageByDay(orgID int64, days int) ([]model.DailyUsage, error)
}

type SavedSearchStore interface {
	Create(search *model.SavedSearch) error
	ListByOrg(orgID int64) ([]model.SavedSearch, error)
	Delete(id string, orgID int64) (bool, error)
}

type AccountHandler struct {
	plans    PlanStore
	keys     KeyStore
	searches SavedSearchStore
}

func NewAccountHandler(plans PlanStore, keys KeyStore, searches SavedSearchStore) *AccountHandler {
	return &AccountHandler{plans: plans, keys: keys, searches: searches}
}

// GetPlans is the one account route served without a key.
func (h *AccountHandler) GetPlans(c *gin.Context) {
	plans, err := h.plans.GetPlans()
	if err != nil {
		slog.Error("error fetching plans", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var res []PlanResponse
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}

	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	usedToday, err := h.keys.OrgUsageToday(pr.Org.ID)
	if err != nil {
		slog.Error("error fetching usage", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := AccountResponse{
		Organization: OrgResponse{
			ID:        pr.Org.ID,
			Name:      pr.Org.Name,
			Slug:      pr.Org.Slug,
			CreatedAt: pr.Org.CreatedAt.Format(time.RFC3339),
		},
		Plan:       toPlanResponse(*pr.Plan),
		UsageToday: usedToday,
	}

	if !pr.Plan.Unlimited() {
		remaining := int64(pr.Plan.RequestLimit) - usedToday
		if remaining < 0 {
			remaining = 0
		}
		res.RemainingToday = &remaining
	}

	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) GetUsage(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	days := getQueryInt("days", 7, c)
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	usage, err := h.keys.UsageByDay(pr.Org.ID, days)
	if err != nil {
		slog.Error("error fetching usage", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := UsageResponse{Days: days, Usage: []DailyUsageResponse{}}
	for _, u := range usage {
		res.Usage = append(res.Usage, DailyUsageResponse{
			Date:     u.Date.Format("2006-01-02"),
			Requests: u.Requests,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) CreateKey(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	var req CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	mode := pr.Plan.MaxAccessMode
	if req.AccessMode != "" {
		mode = model.AccessMode(req.AccessMode)
	}
	if mode.Exceeds(pr.Plan.MaxAccessMode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access mode exceeds plan limit"})
		return
	}

	key := &model.APIKey{
		OrgID:      pr.Org.ID,
		Name:       req.Name,
		Token:      model.NewKeyToken(),
		AccessMode: mode,
	}

	if err := h.keys.Create(key); err != nil {
		slog.Error("error creating key", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// The only response that carries the full token.
	c.JSON(http.StatusCreated, toKeyResponse(*key, true))
}

func (h *AccountHandler) GetKeys(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	keys, err := h.keys.ListByOrg(pr.Org.ID)
	if err != nil {
		slog.Error("error fetching keys", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := []KeyResponse{}
	for _, k := range keys {
		res = append(res, toKeyResponse(k, false))
	}

	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) RevokeKey(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	id := c.Param("id")
	keyID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid key id"})
		return
	}

	ok, err := h.keys.Revoke(keyID, pr.Org.ID)
	if err != nil {
		slog.Error("error revoking key", "error", err, "key_id", keyID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Key not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (h *AccountHandler) CreateSavedSearch(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	var req CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	search := req.Request
	search.Normalize()
	if err := search.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved := &model.SavedSearch{
		ID:      uuid.NewString(),
		OrgID:   pr.Org.ID,
		Name:    req.Name,
		Request: search,
	}

	if err := h.searches.Create(saved); err != nil {
		slog.Error("error creating saved search", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toSavedSearchResponse(*saved))
}

func (h *AccountHandler) GetSavedSearches(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	searches, err := h.searches.ListByOrg(pr.Org.ID)
	if err != nil {
		slog.Error("error fetching saved searches", "error", err, "org_id", pr.Org.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := []SavedSearchResponse{}
	for _, s := range searches {
		res = append(res, toSavedSearchResponse(s))
	}

	c.JSON(http.StatusOK, res)
}

func (h *AccountHandler) DeleteSavedSearch(c *gin.Context) {
	pr := requirePrincipal(c)
	if pr == nil {
		return
	}

	id := c.Param("id")

	ok, err := h.searches.Delete(id, pr.Org.ID)
	if err != nil {
		slog.Error("error deleting saved search", "error", err, "search_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved search not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func requirePrincipal(c *gin.Context) *middleware.Principal {
	pr := middleware.GetPrincipal(c)
	if pr == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
	}
	return pr
}
