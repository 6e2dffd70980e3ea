package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	planRepo "carebook/database/repository/plan"
	"carebook/middleware"
	"carebook/models"
	"carebook/utils"
)

// PlanHandler serves provider service-plan management.
type PlanHandler struct {
	Plans planRepo.Repository
}

func NewPlanHandler(plans planRepo.Repository) *PlanHandler {
	return &PlanHandler{Plans: plans}
}

type createPlanRequest struct {
	Category           models.PlanCategory `json:"category" binding:"required"`
	HourlyRate         float64             `json:"hourlyRate" binding:"required,gt=0"`
	ExtraDependentRate float64             `json:"extraDependentRate" binding:"gte=0"`
	MinHours           int                 `json:"minHours" binding:"required,min=1"`
}

// CreatePlanHandler adds an active plan for the authenticated provider.
func (h *PlanHandler) CreatePlanHandler(c *gin.Context) {
	providerID := middleware.ActorID(c)

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan category"})
		return
	}

	plan := models.ServicePlan{
		ProviderID:         providerID,
		Category:           req.Category,
		HourlyRate:         req.HourlyRate,
		ExtraDependentRate: req.ExtraDependentRate,
		MinHours:           req.MinHours,
		Active:             true,
	}
	if err := h.Plans.Create(c.Request.Context(), &plan); err != nil {
		utils.GetLogger().Error("Failed to create plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// ListPlansHandler returns a provider's plans. Requesters pass providerId;
// providers see their own when the query is absent.
func (h *PlanHandler) ListPlansHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		providerID = middleware.ActorID(c)
	}

	plans, err := h.Plans.GetByProviderID(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// SetPlanActiveHandler flips a plan's active flag; inactive plans stop being
// selectable but existing bookings keep their frozen price.
func (h *PlanHandler) SetPlanActiveHandler(c *gin.Context) {
	providerID := middleware.ActorID(c)
	planID := c.Param("planID")

	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing active flag"})
		return
	}

	if err := h.Plans.SetActive(c.Request.Context(), providerID, planID, *body.Active); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan updated"})
}
