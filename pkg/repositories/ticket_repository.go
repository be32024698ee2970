package repositories

import (
	"context"
	"fmt"

	"github.com/waypoint-hq/waypoint-engine/pkg/database"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// TicketRepository defines data access for feedback tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
}

type ticketRepository struct {
	db *database.DB
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *database.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if ticket.Type == "" {
		ticket.Type = "Feedback"
	}
	if ticket.Status == "" {
		ticket.Status = "Open"
	}

	query := `
		INSERT INTO tickets (user_id, user_email, subject, message, type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		ticket.UserID,
		ticket.UserEmail,
		ticket.Subject,
		ticket.Message,
		ticket.Type,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}
