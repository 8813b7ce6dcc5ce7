package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	habitHandler *HabitHandler,
	entryHandler *EntryHandler,
	statsHandler *StatsHandler,
	partnershipHandler *PartnershipHandler,
	goalHandler *GoalHandler,
	notificationHandler *NotificationHandler,
	syncHandler *SyncHandler,
	jwtSecret string,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	// Public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.POST("/habits", habitHandler.Create)
		auth.GET("/habits", habitHandler.List)
		auth.PUT("/habits/:id", habitHandler.Update)
		auth.POST("/habits/:id/archive", habitHandler.Archive)
		auth.DELETE("/habits/:id", habitHandler.Delete)

		auth.POST("/habits/:id/entries/:date/cycle", entryHandler.Cycle)
		auth.PUT("/habits/:id/entries/:date", entryHandler.Set)
		auth.DELETE("/habits/:id/entries/:date", entryHandler.Clear)

		auth.GET("/stats/quarter", statsHandler.Quarter)
		auth.GET("/stats/month", statsHandler.Month)
		auth.GET("/stats/week", statsHandler.Week)
		auth.GET("/stats/period", statsHandler.Period)
		auth.GET("/stats/streaks", statsHandler.Streaks)
		auth.GET("/leaderboard/weekly", statsHandler.WeeklyLeaderboard)

		auth.POST("/partnerships", partnershipHandler.Invite)
		auth.POST("/partnerships/:id/respond", partnershipHandler.Respond)
		auth.GET("/partnerships/partners", partnershipHandler.Partners)
		auth.GET("/partnerships/pending", partnershipHandler.Pending)

		auth.POST("/goals", goalHandler.Create)
		auth.GET("/goals", goalHandler.List)
		auth.POST("/goals/:id/toggle", goalHandler.Toggle)
		auth.DELETE("/goals/:id", goalHandler.Delete)

		auth.GET("/notifications", notificationHandler.List)
		auth.POST("/notifications/:id/read", notificationHandler.MarkRead)

		auth.POST("/sync/entries", syncHandler.Replay)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
