package mqhandler

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"habitloop/internal/metrics"
	"habitloop/internal/mq"
	"habitloop/internal/repository"
	"habitloop/internal/service"
)

// EntryChangedHandler drops stale weekly leaderboard caches whenever a
// day's completion state changes. The changed user's board and every
// accepted partner's board contain the affected row.
type EntryChangedHandler struct {
	stats           *service.StatsService
	partnershipRepo *repository.PartnershipRepository
	logger          *zap.Logger
}

func NewEntryChangedHandler(
	stats *service.StatsService,
	partnershipRepo *repository.PartnershipRepository,
	logger *zap.Logger,
) *EntryChangedHandler {
	return &EntryChangedHandler{
		stats:           stats,
		partnershipRepo: partnershipRepo,
		logger:          logger,
	}
}

func (h *EntryChangedHandler) HandleEntryChanged(ctx context.Context, raw json.RawMessage) error {
	start := time.Now()

	var p mq.EntryChangedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal entry changed payload", zap.Error(err))
		return err
	}

	h.logger.Debug("Invalidating leaderboard caches",
		zap.Int("user_id", p.UserID),
		zap.String("entry_date", p.EntryDate),
	)

	h.stats.InvalidateLeaderboard(ctx, p.UserID, p.EntryDate)

	partners, err := h.partnershipRepo.ListPartners(ctx, p.UserID)
	if err != nil {
		h.logger.Error("Failed to list partners for invalidation",
			zap.Int("user_id", p.UserID),
			zap.Error(err),
		)
		return err
	}
	for _, id := range partners {
		h.stats.InvalidateLeaderboard(ctx, id, p.EntryDate)
	}

	metrics.RecordMQConsumeLatency(mq.RoutingEntryChanged, "entry.changed.leaderboard.q", time.Since(start))
	return nil
}
