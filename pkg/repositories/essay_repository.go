package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/database"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// EssayRepository defines data access for student essays.
type EssayRepository interface {
	// Exists reports whether the student already has an essay with this
	// title scoped to the given college. A nil collegeID matches only
	// essays not tied to any college.
	Exists(ctx context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error)

	Create(ctx context.Context, essay *models.Essay) error
	GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.Essay, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Essay, error)
	UpdateContent(ctx context.Context, userID uuid.UUID, title, content string, wordCount int) error
}

type essayRepository struct {
	db *database.DB
}

// NewEssayRepository creates a new essay repository.
func NewEssayRepository(db *database.DB) EssayRepository {
	return &essayRepository{db: db}
}

const essayColumns = `id, user_id, college_id, title, prompt, word_limit, essay_type,
	content, word_count, is_completed, created_at, updated_at`

func (r *essayRepository) Exists(ctx context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM essays
			WHERE user_id = $1 AND college_id IS NOT DISTINCT FROM $2 AND title = $3
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, collegeID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check essay existence: %w", err)
	}

	return exists, nil
}

func (r *essayRepository) Create(ctx context.Context, essay *models.Essay) error {
	query := `
		INSERT INTO essays (user_id, college_id, title, prompt, word_limit, essay_type, content, word_count, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		essay.UserID,
		essay.CollegeID,
		essay.Title,
		essay.Prompt,
		essay.WordLimit,
		essay.EssayType,
		essay.Content,
		essay.WordCount,
		essay.IsCompleted,
	).Scan(&essay.ID, &essay.CreatedAt, &essay.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create essay: %w", err)
	}

	return nil
}

func (r *essayRepository) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.Essay, error) {
	query := `SELECT ` + essayColumns + ` FROM essays WHERE user_id = $1 AND title = $2 LIMIT 1`

	var essay models.Essay
	err := r.db.QueryRow(ctx, query, userID, title).Scan(
		&essay.ID,
		&essay.UserID,
		&essay.CollegeID,
		&essay.Title,
		&essay.Prompt,
		&essay.WordLimit,
		&essay.EssayType,
		&essay.Content,
		&essay.WordCount,
		&essay.IsCompleted,
		&essay.CreatedAt,
		&essay.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get essay: %w", err)
	}

	return &essay, nil
}

func (r *essayRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Essay, error) {
	query := `SELECT ` + essayColumns + ` FROM essays WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}
	defer rows.Close()

	var essays []models.Essay
	for rows.Next() {
		var essay models.Essay
		if err := rows.Scan(
			&essay.ID,
			&essay.UserID,
			&essay.CollegeID,
			&essay.Title,
			&essay.Prompt,
			&essay.WordLimit,
			&essay.EssayType,
			&essay.Content,
			&essay.WordCount,
			&essay.IsCompleted,
			&essay.CreatedAt,
			&essay.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan essay: %w", err)
		}
		essays = append(essays, essay)
	}

	return essays, rows.Err()
}

func (r *essayRepository) UpdateContent(ctx context.Context, userID uuid.UUID, title, content string, wordCount int) error {
	query := `
		UPDATE essays
		SET content = $3, word_count = $4, updated_at = now()
		WHERE user_id = $1 AND title = $2`

	tag, err := r.db.Exec(ctx, query, userID, title, content, wordCount)
	if err != nil {
		return fmt.Errorf("failed to update essay content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
