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

// ProfileRepository defines data access for student profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	ListActivities(ctx context.Context, userID uuid.UUID) ([]models.Activity, error)
	ListAwards(ctx context.Context, userID uuid.UUID) ([]models.Award, error)
}

type profileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *database.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT id, full_name, email, intended_major, graduation_year,
		       unweighted_gpa, sat_score, act_score, voice_mode, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.IntendedMajor,
		&profile.GraduationYear,
		&profile.UnweightedGPA,
		&profile.SATScore,
		&profile.ACTScore,
		&profile.VoiceMode,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, email, intended_major, graduation_year,
			unweighted_gpa, sat_score, act_score, voice_mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    email = EXCLUDED.email,
		    intended_major = EXCLUDED.intended_major,
		    graduation_year = EXCLUDED.graduation_year,
		    unweighted_gpa = EXCLUDED.unweighted_gpa,
		    sat_score = EXCLUDED.sat_score,
		    act_score = EXCLUDED.act_score,
		    voice_mode = EXCLUDED.voice_mode,
		    updated_at = now()`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.FullName,
		profile.Email,
		profile.IntendedMajor,
		profile.GraduationYear,
		profile.UnweightedGPA,
		profile.SATScore,
		profile.ACTScore,
		profile.VoiceMode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) ListActivities(ctx context.Context, userID uuid.UUID) ([]models.Activity, error) {
	query := `
		SELECT id, user_id, name, role, description, years, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Name,
			&activity.Role,
			&activity.Description,
			&activity.Years,
			&activity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func (r *profileRepository) ListAwards(ctx context.Context, userID uuid.UUID) ([]models.Award, error) {
	query := `
		SELECT id, user_id, title, level, year, created_at
		FROM awards
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	defer rows.Close()

	var awards []models.Award
	for rows.Next() {
		var award models.Award
		if err := rows.Scan(
			&award.ID,
			&award.UserID,
			&award.Title,
			&award.Level,
			&award.Year,
			&award.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		awards = append(awards, award)
	}

	return awards, rows.Err()
}
