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

// CollegeRepository defines data access for a student's college list.
type CollegeRepository interface {
	GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*models.UserCollege, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserCollege, error)
	Create(ctx context.Context, college *models.UserCollege) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, name string, status models.CollegeStatus) error
	UpdateType(ctx context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) error
}

type collegeRepository struct {
	db *database.DB
}

// NewCollegeRepository creates a new college repository.
func NewCollegeRepository(db *database.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

const collegeColumns = `id, user_id, name, application_platform, type, status, created_at`

func (r *collegeRepository) GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*models.UserCollege, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE user_id = $1 AND name = $2`

	var college models.UserCollege
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&college.ID,
		&college.UserID,
		&college.Name,
		&college.ApplicationPlatform,
		&college.Type,
		&college.Status,
		&college.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}

	return &college, nil
}

func (r *collegeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserCollege, error) {
	query := `SELECT ` + collegeColumns + ` FROM colleges WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	defer rows.Close()

	var colleges []models.UserCollege
	for rows.Next() {
		var college models.UserCollege
		if err := rows.Scan(
			&college.ID,
			&college.UserID,
			&college.Name,
			&college.ApplicationPlatform,
			&college.Type,
			&college.Status,
			&college.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, college)
	}

	return colleges, rows.Err()
}

func (r *collegeRepository) Create(ctx context.Context, college *models.UserCollege) error {
	query := `
		INSERT INTO colleges (user_id, name, application_platform, type, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		college.UserID,
		college.Name,
		college.ApplicationPlatform,
		college.Type,
		college.Status,
	).Scan(&college.ID, &college.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create college: %w", err)
	}

	return nil
}

func (r *collegeRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, name string, status models.CollegeStatus) error {
	query := `UPDATE colleges SET status = $3 WHERE user_id = $1 AND name = $2`

	tag, err := r.db.Exec(ctx, query, userID, name, status)
	if err != nil {
		return fmt.Errorf("failed to update college status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *collegeRepository) UpdateType(ctx context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) error {
	query := `UPDATE colleges SET type = $3 WHERE user_id = $1 AND name = $2`

	tag, err := r.db.Exec(ctx, query, userID, name, collegeType)
	if err != nil {
		return fmt.Errorf("failed to update college type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
