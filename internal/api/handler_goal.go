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

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func goalStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGoalNotOwner):
		return http.StatusForbidden
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Create handles POST /goals
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Title     string `json:"title" binding:"required"`
		Type      string `json:"type" binding:"required"`
		Quarter   int    `json:"quarter"`
		Year      int    `json:"year"`
		WeekStart string `json:"week_start"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	goal := &model.Goal{
		UserID:    userID,
		Title:     req.Title,
		Type:      req.Type,
		Quarter:   req.Quarter,
		Year:      req.Year,
		WeekStart: req.WeekStart,
	}
	if err := h.goalService.Create(c.Request.Context(), goal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// List handles GET /goals
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch goals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// Toggle handles POST /goals/:id/toggle
func (h *GoalHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, err := h.goalService.Toggle(c.Request.Context(), userID, goalID)
	if err != nil {
		c.JSON(goalStatus(err), gin.H{"error": "failed to toggle goal"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// Delete handles DELETE /goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), userID, goalID); err != nil {
		c.JSON(goalStatus(err), gin.H{"error": "failed to delete goal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": goalID})
}
