package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// FeedbackService records feedback tickets and emits a notification event.
type FeedbackService interface {
	Submit(ctx context.Context, ticket *models.Ticket) error
}

type feedbackService struct {
	tickets  repositories.TicketRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewFeedbackService creates the feedback service.
func NewFeedbackService(tickets repositories.TicketRepository, notifier Notifier, logger *zap.Logger) FeedbackService {
	return &feedbackService{
		tickets:  tickets,
		notifier: notifier,
		logger:   logger.Named("feedback"),
	}
}

func (s *feedbackService) Submit(ctx context.Context, ticket *models.Ticket) error {
	if strings.TrimSpace(ticket.Message) == "" {
		return apperrors.ErrInvalidArgument
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	// Notification outcome is never surfaced to the caller
	go s.notifier.NotifyFeedback(context.WithoutCancel(ctx), ticket)

	return nil
}
