package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"habitloop/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Quarter handles GET /stats/quarter?year=2025&quarter=1
func (h *StatsHandler) Quarter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	today := todayParam(c)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(today.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	quarter, err := strconv.Atoi(c.DefaultQuery("quarter", "1"))
	if err != nil || quarter < 1 || quarter > 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quarter"})
		return
	}

	summary, err := h.statsService.QuarterStats(c.Request.Context(), userID, year, quarter, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Month handles GET /stats/month?year=2025&month=2
func (h *StatsHandler) Month(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	today := todayParam(c)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(today.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(today.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	summary, err := h.statsService.MonthStats(c.Request.Context(), userID, year, time.Month(month), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Week handles GET /stats/week?date=2025-03-15
func (h *StatsHandler) Week(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	today := todayParam(c)

	date := today
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		date = parsed
	}

	summary, err := h.statsService.WeekStats(c.Request.Context(), userID, date, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Period handles GET /stats/period?year=2025&index=3; without an index
// the period containing today is used.
func (h *StatsHandler) Period(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	today := todayParam(c)

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(today.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	index, _ := strconv.Atoi(c.DefaultQuery("index", "0"))

	resolved, summary, err := h.statsService.PeriodStats(c.Request.Context(), userID, year, index, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":  resolved,
		"summary": summary,
	})
}

// Streaks handles GET /stats/streaks
func (h *StatsHandler) Streaks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	streaks, err := h.statsService.Streaks(c.Request.Context(), userID, todayParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streaks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streaks": streaks})
}

// WeeklyLeaderboard handles GET /leaderboard/weekly
func (h *StatsHandler) WeeklyLeaderboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.statsService.WeeklyLeaderboard(c.Request.Context(), userID, todayParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
