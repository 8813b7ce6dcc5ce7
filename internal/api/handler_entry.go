package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habitloop/internal/service"
)

type EntryHandler struct {
	habitService *service.HabitService
}

func NewEntryHandler(habitService *service.HabitService) *EntryHandler {
	return &EntryHandler{
		habitService: habitService,
	}
}

// Cycle handles POST /habits/:id/entries/:date/cycle
//
// Each call advances the day one step through
// untracked -> done -> missed -> untracked.
func (h *EntryHandler) Cycle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	entry, err := h.habitService.CycleEntry(c.Request.Context(), userID, habitID, c.Param("date"))
	if err != nil {
		c.JSON(habitStatus(err), gin.H{"error": err.Error()})
		return
	}

	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"status": "untracked"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Set handles PUT /habits/:id/entries/:date
func (h *EntryHandler) Set(c *gin.Context) {
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
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry, err := h.habitService.SetEntryStatus(c.Request.Context(), userID, habitID, c.Param("date"), req.Status, req.Note)
	if err != nil {
		c.JSON(habitStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Clear handles DELETE /habits/:id/entries/:date
func (h *EntryHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	habitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	if err := h.habitService.ClearEntry(c.Request.Context(), userID, habitID, c.Param("date")); err != nil {
		c.JSON(habitStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "untracked"})
}
