package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// Notifier delivers feedback notifications to the team. Delivery is
// fire-and-forget: the core emits the event and never waits on or surfaces
// the outcome.
type Notifier interface {
	NotifyFeedback(ctx context.Context, ticket *models.Ticket)
}

// logNotifier records the event in the log. Real delivery (email) is an
// external collaborator behind the same interface.
type logNotifier struct {
	inbox  string
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only logs. The inbox address is the
// destination delivery would target.
func NewLogNotifier(inbox string, logger *zap.Logger) Notifier {
	return &logNotifier{inbox: inbox, logger: logger.Named("notifier")}
}

func (n *logNotifier) NotifyFeedback(_ context.Context, ticket *models.Ticket) {
	n.logger.Info("feedback received",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("subject", ticket.Subject),
		zap.String("type", ticket.Type),
		zap.String("inbox", n.inbox))
}

var _ Notifier = (*logNotifier)(nil)
