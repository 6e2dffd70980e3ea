package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	availabilityRepo "carebook/database/repository/availability"
	"carebook/middleware"
	"carebook/models"
	"carebook/services/availability"
	"carebook/utils"
)

// AvailabilityHandler serves provider rule management and the open-slot
// lookup requesters browse before booking.
type AvailabilityHandler struct {
	Rules availabilityRepo.Repository
	Cache *redis.Client
}

func NewAvailabilityHandler(rules availabilityRepo.Repository, cache *redis.Client) *AvailabilityHandler {
	return &AvailabilityHandler{Rules: rules, Cache: cache}
}

// CreateRuleHandler adds an availability rule for the authenticated provider.
func (h *AvailabilityHandler) CreateRuleHandler(c *gin.Context) {
	providerID := middleware.ActorID(c)

	var rule models.AvailabilityRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	rule.ProviderID = providerID
	if err := rule.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Rules.Create(c.Request.Context(), &rule); err != nil {
		utils.GetLogger().Error("Failed to create availability rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rule"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// DeleteRuleHandler removes one of the provider's own rules.
func (h *AvailabilityHandler) DeleteRuleHandler(c *gin.Context) {
	providerID := middleware.ActorID(c)
	ruleID := c.Param("ruleID")

	if err := h.Rules.DeleteByID(c.Request.Context(), providerID, ruleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted"})
}

// ListRulesHandler returns the authenticated provider's rule set.
func (h *AvailabilityHandler) ListRulesHandler(c *gin.Context) {
	providerID := middleware.ActorID(c)

	rules, err := h.Rules.GetByProviderID(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type openSlotsResponse struct {
	Bookable   bool               `json:"bookable"`
	Ranges     []models.TimeRange `json:"ranges"`
	StartHours []int              `json:"startHours"`
}

// GetOpenSlotsHandler answers "what can I book on this date" for one
// provider. Responses are cached briefly; the rule set stays the source of
// truth.
func (h *AvailabilityHandler) GetOpenSlotsHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId and date are required"})
		return
	}

	ctx := c.Request.Context()
	cacheKey := utils.SlotCachePrefix + providerID + ":" + date
	if h.Cache != nil {
		if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var resp openSlotsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	rules, err := h.Rules.GetByProviderID(ctx, providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability"})
		return
	}

	resp := openSlotsResponse{
		Bookable:   availability.Bookable(rules, date),
		Ranges:     availability.OpenRanges(rules, date),
		StartHours: availability.StartHours(rules, date),
	}

	if h.Cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			h.Cache.Set(ctx, cacheKey, data, utils.SlotCacheTTL)
		}
	}
	c.JSON(http.StatusOK, resp)
}
