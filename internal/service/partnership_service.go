package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habitloop/internal/model"
	"habitloop/internal/mq"
	"habitloop/internal/repository"
)

var (
	ErrSelfPartnership      = errors.New("cannot invite yourself")
	ErrPartnershipExists    = errors.New("partnership already exists for this pair")
	ErrPartnershipNotTarget = errors.New("only the invited user can respond")
	ErrPartnershipSettled   = errors.New("partnership is no longer pending")
)

type PartnershipService struct {
	partnershipRepo *repository.PartnershipRepository
	userRepo        *repository.UserRepository
	publisher       *mq.Publisher
	logger          *zap.Logger
}

func NewPartnershipService(
	partnershipRepo *repository.PartnershipRepository,
	userRepo *repository.UserRepository,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *PartnershipService {
	return &PartnershipService{
		partnershipRepo: partnershipRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// Invite creates a pending partnership toward the user owning the
// given email. One meaningful partnership per unordered pair: an
// existing pending or accepted link in either direction blocks a new
// invite, a rejected one does not.
func (s *PartnershipService) Invite(ctx context.Context, requesterID int, targetEmail string) (*model.Partnership, error) {
	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("no user with that email")
		}
		return nil, err
	}
	if target.ID == requesterID {
		return nil, ErrSelfPartnership
	}

	existing, err := s.partnershipRepo.FindBetween(ctx, requesterID, target.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPartnershipExists
	}

	p := &model.Partnership{
		RequesterID: requesterID,
		TargetID:    target.ID,
		Status:      model.PartnershipPending,
	}
	id, err := s.partnershipRepo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	payload := mq.PartnershipRequestedPayload{
		PartnershipID:  id,
		RequesterID:    requesterID,
		RequesterEmail: requester.Email,
		TargetID:       target.ID,
	}
	if err := s.publisher.Publish(mq.RoutingPartnershipRequested, payload); err != nil {
		s.logger.Warn("Failed to publish partnership.requested",
			zap.Int("partnership_id", id),
			zap.Error(err),
		)
	}
	return p, nil
}

// Respond accepts or rejects a pending invite. Only the target may
// respond, and only once.
func (s *PartnershipService) Respond(ctx context.Context, userID, partnershipID int, accept bool) (*model.Partnership, error) {
	p, err := s.partnershipRepo.GetByID(ctx, partnershipID)
	if err != nil {
		return nil, err
	}
	if p.TargetID != userID {
		return nil, ErrPartnershipNotTarget
	}
	if p.Status != model.PartnershipPending {
		return nil, ErrPartnershipSettled
	}

	status := model.PartnershipRejected
	if accept {
		status = model.PartnershipAccepted
	}
	if err := s.partnershipRepo.UpdateStatus(ctx, partnershipID, status); err != nil {
		return nil, err
	}
	p.Status = status

	if accept {
		payload := mq.PartnershipAcceptedPayload{
			PartnershipID: p.ID,
			RequesterID:   p.RequesterID,
			TargetID:      p.TargetID,
			AcceptedBy:    userID,
		}
		if err := s.publisher.Publish(mq.RoutingPartnershipAccepted, payload); err != nil {
			s.logger.Warn("Failed to publish partnership.accepted",
				zap.Int("partnership_id", p.ID),
				zap.Error(err),
			)
		}
	}
	return p, nil
}

// Partners returns the users on the other side of every accepted link.
func (s *PartnershipService) Partners(ctx context.Context, userID int) ([]model.User, error) {
	ids, err := s.partnershipRepo.ListPartners(ctx, userID)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			s.logger.Warn("Skipping unknown partner", zap.Int("user_id", id), zap.Error(err))
			continue
		}
		users = append(users, *u)
	}
	return users, nil
}

// PendingInvites returns invites awaiting the user's answer.
func (s *PartnershipService) PendingInvites(ctx context.Context, userID int) ([]model.Partnership, error) {
	return s.partnershipRepo.ListPendingForTarget(ctx, userID)
}
