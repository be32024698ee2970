package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/waypoint-hq/waypoint-engine/pkg/database"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// ConversationRepository defines data access for the conversation log.
type ConversationRepository interface {
	// Append inserts the turns in order. The log is append-only.
	Append(ctx context.Context, turns ...*models.ConversationTurn) error

	// History returns the most recent turns for a user in chronological order.
	History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ConversationTurn, error)
}

type conversationRepository struct {
	db *database.DB
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *database.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Append(ctx context.Context, turns ...*models.ConversationTurn) error {
	query := `
		INSERT INTO conversations (user_id, role, content, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	for _, turn := range turns {
		var metadata []byte
		if turn.Metadata != nil {
			var err error
			metadata, err = json.Marshal(turn.Metadata)
			if err != nil {
				return fmt.Errorf("failed to marshal metadata: %w", err)
			}
		}

		err := r.db.QueryRow(ctx, query,
			turn.UserID,
			turn.Role,
			turn.Content,
			metadata,
		).Scan(&turn.ID, &turn.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to append conversation turn: %w", err)
		}
	}

	return nil
}

func (r *conversationRepository) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.ConversationTurn, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, role, content, metadata, created_at
		FROM (
			SELECT id, user_id, role, content, metadata, created_at
			FROM conversations
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}
	defer rows.Close()

	var turns []models.ConversationTurn
	for rows.Next() {
		var turn models.ConversationTurn
		var metadata []byte
		if err := rows.Scan(
			&turn.ID,
			&turn.UserID,
			&turn.Role,
			&turn.Content,
			&metadata,
			&turn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &turn.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}
