package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"habitloop/internal/model"
	"habitloop/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

func habitStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Create handles POST /habits
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required"`
		Description   string `json:"description"`
		Color         string `json:"color"`
		TargetPerWeek int    `json:"target_per_week"`
		GoalMetric    string `json:"goal_metric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	habit := &model.Habit{
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		Color:         req.Color,
		TargetPerWeek: req.TargetPerWeek,
		GoalMetric:    req.GoalMetric,
	}
	if err := h.habitService.Create(c.Request.Context(), habit); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create habit"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List handles GET /habits
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	habits, err := h.habitService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch habits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// Update handles PUT /habits/:id
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required"`
		Description   string `json:"description"`
		Color         string `json:"color"`
		TargetPerWeek int    `json:"target_per_week"`
		GoalMetric    string `json:"goal_metric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	habit := &model.Habit{
		ID:            habitID,
		Name:          req.Name,
		Description:   req.Description,
		Color:         req.Color,
		TargetPerWeek: req.TargetPerWeek,
		GoalMetric:    req.GoalMetric,
	}
	if err := h.habitService.Update(c.Request.Context(), userID, habit); err != nil {
		c.JSON(habitStatus(err), gin.H{"error": "failed to update habit"})
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Archive handles POST /habits/:id/archive
func (h *HabitHandler) Archive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	var req struct {
		Archived *bool `json:"archived" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.habitService.Archive(c.Request.Context(), userID, habitID, *req.Archived); err != nil {
		c.JSON(habitStatus(err), gin.H{"error": "failed to archive habit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": *req.Archived})
}

// Delete handles DELETE /habits/:id
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	if err := h.habitService.Delete(c.Request.Context(), userID, habitID); err != nil {
		c.JSON(habitStatus(err), gin.H{"error": "failed to delete habit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": habitID})
}
