package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

type fakeTicketRepo struct {
	tickets []*models.Ticket
	err     error
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	if f.err != nil {
		return f.err
	}
	ticket.ID = uuid.New()
	if ticket.Type == "" {
		ticket.Type = "Feedback"
	}
	if ticket.Status == "" {
		ticket.Status = "Open"
	}
	f.tickets = append(f.tickets, ticket)
	return nil
}

var _ repositories.TicketRepository = (*fakeTicketRepo)(nil)

// channelNotifier signals deliveries so tests can wait on the background
// notification goroutine.
type channelNotifier struct {
	delivered chan *models.Ticket
}

func (n *channelNotifier) NotifyFeedback(_ context.Context, ticket *models.Ticket) {
	n.delivered <- ticket
}

func TestFeedbackSubmit_PersistsAndNotifies(t *testing.T) {
	repo := &fakeTicketRepo{}
	notifier := &channelNotifier{delivered: make(chan *models.Ticket, 1)}
	svc := NewFeedbackService(repo, notifier, zap.NewNop())

	userID := uuid.New()
	ticket := &models.Ticket{
		UserID:    &userID,
		UserEmail: "student@example.com",
		Subject:   "Essay tracker",
		Message:   "Word counts lag behind edits.",
	}

	err := svc.Submit(context.Background(), ticket)
	require.NoError(t, err)
	require.Len(t, repo.tickets, 1)
	assert.NotEqual(t, uuid.Nil, ticket.ID)
	assert.Equal(t, "Feedback", ticket.Type)
	assert.Equal(t, "Open", ticket.Status)

	select {
	case delivered := <-notifier.delivered:
		assert.Equal(t, ticket.ID, delivered.ID)
	case <-time.After(time.Second):
		t.Fatal("expected notification")
	}
}

func TestFeedbackSubmit_EmptyMessageRejected(t *testing.T) {
	repo := &fakeTicketRepo{}
	notifier := &channelNotifier{delivered: make(chan *models.Ticket, 1)}
	svc := NewFeedbackService(repo, notifier, zap.NewNop())

	err := svc.Submit(context.Background(), &models.Ticket{Message: ""})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Empty(t, repo.tickets)
}

func TestFeedbackSubmit_RepoFailurePropagates(t *testing.T) {
	repo := &fakeTicketRepo{err: fmt.Errorf("connection refused")}
	notifier := &channelNotifier{delivered: make(chan *models.Ticket, 1)}
	svc := NewFeedbackService(repo, notifier, zap.NewNop())

	err := svc.Submit(context.Background(), &models.Ticket{Message: "hello"})
	require.Error(t, err)

	select {
	case <-notifier.delivered:
		t.Fatal("expected no notification on persistence failure")
	case <-time.After(50 * time.Millisecond):
	}
}
