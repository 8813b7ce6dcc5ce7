package main

import (
	"time"

	"go.uber.org/zap"

	"habitloop/config"
	"habitloop/internal/db"
	"habitloop/internal/mq"
	"habitloop/internal/mqhandler"
	redisclient "habitloop/internal/redis"
	"habitloop/internal/repository"
	"habitloop/internal/service"
	"habitloop/internal/util"
)

func main() {
	// Load config
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting worker service...")

	// Init Redis
	rdb := redisclient.NewClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduper(rdb, time.Hour)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	logger.Info("Database connection established")

	// Init Repositories
	userRepo := repository.NewUserRepository(dbConn)
	habitRepo := repository.NewHabitRepository(dbConn, logger)
	entryRepo := repository.NewEntryRepository(dbConn, logger)
	partnershipRepo := repository.NewPartnershipRepository(dbConn, logger)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	statsService := service.NewStatsService(habitRepo, entryRepo, userRepo, partnershipRepo, rdb, logger)

	// Init Handlers
	entryHandler := mqhandler.NewEntryChangedHandler(statsService, partnershipRepo, logger)
	partnershipHandler := mqhandler.NewPartnershipHandler(notificationRepo, deduper, logger)

	// (1) Consumer for leaderboard cache invalidation
	logger.Info("Initializing entry-changed consumer", zap.String("queue", "entry.changed.leaderboard.q"))
	consumerEntry, err := mq.NewConsumer(cfg.MQ.URL, "entry.changed.leaderboard.q", mq.RoutingEntryChanged, logger)
	if err != nil {
		logger.Fatal("failed to init entry-changed consumer", zap.Error(err))
	}
	consumerEntry.SetHandler(entryHandler.HandleEntryChanged)
	go func() {
		logger.Info("Starting entry-changed consumer")
		if err := consumerEntry.StartConsuming(); err != nil {
			logger.Fatal("entry-changed consumer failed", zap.Error(err))
		}
	}()
	defer consumerEntry.Close()

	// (2) Consumer for invite notifications
	logger.Info("Initializing invite consumer", zap.String("queue", "partnership.requested.notify.q"))
	consumerInvite, err := mq.NewConsumer(cfg.MQ.URL, "partnership.requested.notify.q", mq.RoutingPartnershipRequested, logger)
	if err != nil {
		logger.Fatal("failed to init invite consumer", zap.Error(err))
	}
	consumerInvite.SetHandler(partnershipHandler.HandleRequested)
	go func() {
		logger.Info("Starting invite consumer")
		if err := consumerInvite.StartConsuming(); err != nil {
			logger.Fatal("invite consumer failed", zap.Error(err))
		}
	}()
	defer consumerInvite.Close()

	// (3) Consumer for accept notifications
	logger.Info("Initializing accept consumer", zap.String("queue", "partnership.accepted.notify.q"))
	consumerAccept, err := mq.NewConsumer(cfg.MQ.URL, "partnership.accepted.notify.q", mq.RoutingPartnershipAccepted, logger)
	if err != nil {
		logger.Fatal("failed to init accept consumer", zap.Error(err))
	}
	consumerAccept.SetHandler(partnershipHandler.HandleAccepted)
	go func() {
		logger.Info("Starting accept consumer")
		if err := consumerAccept.StartConsuming(); err != nil {
			logger.Fatal("accept consumer failed", zap.Error(err))
		}
	}()
	defer consumerAccept.Close()

	logger.Info("Worker running")
	select {}
}
