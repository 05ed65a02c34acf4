package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

// GoalHandler exposes the goal tracking endpoints.
type GoalHandler struct {
	goalService service.IGoalService
}

func NewGoalHandler(goalService service.IGoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// RegisterRoutes registers the goal routes on the given (authenticated) group.
func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.ListGoals)
		goals.POST("", h.CreateGoal)
		goals.PUT("/:goal_id/progress", h.UpdateProgress)
		goals.PUT("/:goal_id/status", h.UpdateStatus)
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "count": len(goals)})
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, expected YYYY-MM-DD"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}

	goal := &models.Goal{
		UserID:      userID,
		GoalType:    req.GoalType,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		StartDate:   startDate,
		TargetDate:  targetDate,
	}

	created, err := h.goalService.CreateGoal(c.Request.Context(), goal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("goal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := h.goalService.UpdateProgress(c.Request.Context(), userID, goalID, req.CurrentValue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goalID, err := uuid.Parse(c.Param("goal_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req UpdateGoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := h.goalService.UpdateStatus(c.Request.Context(), userID, goalID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}
