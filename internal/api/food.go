package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrilog/backend/internal/models"
	"github.com/nutrilog/backend/internal/service"
)

// FoodHandler exposes the food catalog, logging, summary and water endpoints.
type FoodHandler struct {
	foodService    service.IFoodService
	logService     service.IFoodLogService
	summaryService service.ISummaryService
	waterService   service.IWaterService
}

func NewFoodHandler(foodService service.IFoodService, logService service.IFoodLogService, summaryService service.ISummaryService, waterService service.IWaterService) *FoodHandler {
	return &FoodHandler{
		foodService:    foodService,
		logService:     logService,
		summaryService: summaryService,
		waterService:   waterService,
	}
}

// RegisterRoutes registers the food routes on the given (authenticated) group.
func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	food := router.Group("/food")
	{
		food.GET("/search", h.Search)
		food.GET("/barcode/:barcode", h.Barcode)
		food.POST("/foods", h.CreateFood)
		food.POST("/log", h.LogFood)
		food.GET("/logs", h.DailyLogs)
		food.DELETE("/logs/:log_id", h.DeleteLog)
		food.GET("/summary", h.Summary)
		food.GET("/stats/week", h.WeekStats)
		food.GET("/stats/month", h.MonthStats)
		food.POST("/water", h.LogWater)
		food.GET("/water/today", h.WaterToday)
	}
}

func (h *FoodHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	foods, err := h.foodService.SearchFoods(c.Request.Context(), query, &userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": foods, "count": len(foods)})
}

func (h *FoodHandler) Barcode(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	food, err := h.foodService.GetFoodByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	food := &models.Food{
		Name:        req.Name,
		Brand:       req.Brand,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Fiber:       req.Fiber,
		Sugar:       req.Sugar,
		ServingSize: req.ServingSize,
	}
	if req.Barcode != "" {
		food.Barcode = &req.Barcode
	}

	created, err := h.foodService.CreateCustomFood(c.Request.Context(), userID, food)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *FoodHandler) LogFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food_id"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	log, err := h.logService.LogFood(c.Request.Context(), userID, foodID, req.ServingAmount, req.MealType, date, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

func (h *FoodHandler) DailyLogs(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	logs, err := h.logService.DailyLogs(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format(dateLayout), "meals": logs})
}

func (h *FoodHandler) DeleteLog(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	logID, err := uuid.Parse(c.Param("log_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}

func (h *FoodHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	summary, err := h.summaryService.GetOrCreate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *FoodHandler) WeekStats(c *gin.Context) {
	h.periodStats(c, 7)
}

func (h *FoodHandler) MonthStats(c *gin.Context) {
	h.periodStats(c, 30)
}

func (h *FoodHandler) periodStats(c *gin.Context, days int) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(days - 1))

	stats, err := h.summaryService.GetPeriodStats(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date": start.Format(dateLayout),
		"end_date":   end.Format(dateLayout),
		"stats":      stats,
	})
}

func (h *FoodHandler) LogWater(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req LogWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	log, total, err := h.waterService.LogWater(c.Request.Context(), userID, req.AmountML, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": log, "total_ml": total})
}

func (h *FoodHandler) WaterToday(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, _ := parseDate("")
	total, err := h.waterService.DailyWaterIntake(c.Request.Context(), userID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": today.Format(dateLayout), "total_ml": total})
}
