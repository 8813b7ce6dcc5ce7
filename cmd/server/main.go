package main

import (
	"log"

	"go.uber.org/zap"

	"habitloop/config"
	"habitloop/internal/api"
	"habitloop/internal/db"
	"habitloop/internal/mq"
	redisclient "habitloop/internal/redis"
	"habitloop/internal/repository"
	"habitloop/internal/service"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// 2. Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// 3. Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	// 4. Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	// 5. Init repositories
	userRepo := repository.NewUserRepository(dbConn)
	habitRepo := repository.NewHabitRepository(dbConn, logger)
	entryRepo := repository.NewEntryRepository(dbConn, logger)
	partnershipRepo := repository.NewPartnershipRepository(dbConn, logger)
	goalRepo := repository.NewGoalRepository(dbConn, logger)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// 6. Init services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret)
	habitService := service.NewHabitService(habitRepo, entryRepo, publisher, logger)
	statsService := service.NewStatsService(habitRepo, entryRepo, userRepo, partnershipRepo, rdb, logger)
	partnershipService := service.NewPartnershipService(partnershipRepo, userRepo, publisher, logger)
	goalService := service.NewGoalService(goalRepo)
	syncService := service.NewSyncService(habitService, habitRepo, entryRepo, logger)

	// 7. Init handlers
	authHandler := api.NewAuthHandler(authService)
	habitHandler := api.NewHabitHandler(habitService)
	entryHandler := api.NewEntryHandler(habitService)
	statsHandler := api.NewStatsHandler(statsService)
	partnershipHandler := api.NewPartnershipHandler(partnershipService)
	goalHandler := api.NewGoalHandler(goalService)
	notificationHandler := api.NewNotificationHandler(notificationRepo)
	syncHandler := api.NewSyncHandler(syncService)

	// 8. Init router
	router := api.NewRouter(
		authHandler,
		habitHandler,
		entryHandler,
		statsHandler,
		partnershipHandler,
		goalHandler,
		notificationHandler,
		syncHandler,
		cfg.JWT.Secret,
	)

	// 9. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
