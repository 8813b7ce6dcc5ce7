package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"habitloop/internal/model"
	"habitloop/internal/mq"
	"habitloop/internal/repository"
	"habitloop/internal/util"
)

// PartnershipHandler writes the in-app notifications for invite
// activity. The deduper guards against duplicate deliveries.
type PartnershipHandler struct {
	notificationRepo *repository.NotificationRepository
	deduper          *util.Deduper
	logger           *zap.Logger
}

func NewPartnershipHandler(
	notificationRepo *repository.NotificationRepository,
	deduper *util.Deduper,
	logger *zap.Logger,
) *PartnershipHandler {
	return &PartnershipHandler{
		notificationRepo: notificationRepo,
		deduper:          deduper,
		logger:           logger,
	}
}

func (h *PartnershipHandler) HandleRequested(ctx context.Context, raw json.RawMessage) error {
	var p mq.PartnershipRequestedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal partnership requested payload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "partnership_requested", fmt.Sprintf("%d", p.PartnershipID)) {
		h.logger.Debug("Duplicate partnership.requested delivery skipped",
			zap.Int("partnership_id", p.PartnershipID),
		)
		return nil
	}

	notif := &model.Notification{
		UserID:  p.TargetID,
		Type:    "partner_invite",
		Content: fmt.Sprintf("%s invited you to be accountability partners", p.RequesterEmail),
	}
	if err := h.notificationRepo.Insert(ctx, notif); err != nil {
		h.logger.Error("Failed to insert invite notification",
			zap.Int("partnership_id", p.PartnershipID),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Invite notification created",
		zap.Int("partnership_id", p.PartnershipID),
		zap.Int("target_id", p.TargetID),
	)
	return nil
}

func (h *PartnershipHandler) HandleAccepted(ctx context.Context, raw json.RawMessage) error {
	var p mq.PartnershipAcceptedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal partnership accepted payload", zap.Error(err))
		return err
	}

	if !h.deduper.AcquireOnce(ctx, "partnership_accepted", fmt.Sprintf("%d", p.PartnershipID)) {
		return nil
	}

	notif := &model.Notification{
		UserID:  p.RequesterID,
		Type:    "partner_accepted",
		Content: "Your partner invite was accepted",
	}
	if err := h.notificationRepo.Insert(ctx, notif); err != nil {
		h.logger.Error("Failed to insert accepted notification",
			zap.Int("partnership_id", p.PartnershipID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
