package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/database"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// CatalogRepository defines data access for the shared college catalog.
type CatalogRepository interface {
	// GetByName returns the entry whose name matches exactly.
	GetByName(ctx context.Context, name string) (*models.CatalogEntry, error)

	// SearchByName returns the first entry whose name contains the given
	// fragment, case-insensitively.
	SearchByName(ctx context.Context, fragment string) (*models.CatalogEntry, error)

	// Upsert inserts the entry or, when a row with the same name exists,
	// overwrites it and refreshes last_updated.
	Upsert(ctx context.Context, entry *models.CatalogEntry) error
}

type catalogRepository struct {
	db *database.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *database.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

const catalogColumns = `id, name, description, location, website, application_platform,
	acceptance_rate, median_sat, median_act, avg_gpa, enrollment, cost_of_attendance,
	deadline_date, deadline_type, lors_required, essays, last_updated`

func (r *catalogRepository) GetByName(ctx context.Context, name string) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM college_catalog WHERE name = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

func (r *catalogRepository) SearchByName(ctx context.Context, fragment string) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + `
		FROM college_catalog
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1`
	return r.scanOne(r.db.QueryRow(ctx, query, fragment))
}

func (r *catalogRepository) Upsert(ctx context.Context, entry *models.CatalogEntry) error {
	if entry.Essays == nil {
		entry.Essays = []models.CatalogEssay{}
	}
	essays, err := json.Marshal(entry.Essays)
	if err != nil {
		return fmt.Errorf("failed to marshal essays: %w", err)
	}

	entry.LastUpdated = time.Now()

	query := `
		INSERT INTO college_catalog (
			name, description, location, website, application_platform,
			acceptance_rate, median_sat, median_act, avg_gpa, enrollment,
			cost_of_attendance, deadline_date, deadline_type, lors_required,
			essays, last_updated
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    location = EXCLUDED.location,
		    website = EXCLUDED.website,
		    application_platform = EXCLUDED.application_platform,
		    acceptance_rate = EXCLUDED.acceptance_rate,
		    median_sat = EXCLUDED.median_sat,
		    median_act = EXCLUDED.median_act,
		    avg_gpa = EXCLUDED.avg_gpa,
		    enrollment = EXCLUDED.enrollment,
		    cost_of_attendance = EXCLUDED.cost_of_attendance,
		    deadline_date = EXCLUDED.deadline_date,
		    deadline_type = EXCLUDED.deadline_type,
		    lors_required = EXCLUDED.lors_required,
		    essays = EXCLUDED.essays,
		    last_updated = EXCLUDED.last_updated
		RETURNING id`

	err = r.db.QueryRow(ctx, query,
		entry.Name,
		entry.Description,
		entry.Location,
		entry.Website,
		entry.ApplicationPlatform,
		entry.AcceptanceRate,
		entry.MedianSAT,
		entry.MedianACT,
		entry.AvgGPA,
		entry.Enrollment,
		entry.CostOfAttendance,
		entry.DeadlineDate,
		entry.DeadlineType,
		entry.LORsRequired,
		essays,
		entry.LastUpdated,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog entry: %w", err)
	}

	return nil
}

func (r *catalogRepository) scanOne(row pgx.Row) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	var essays []byte

	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Description,
		&entry.Location,
		&entry.Website,
		&entry.ApplicationPlatform,
		&entry.AcceptanceRate,
		&entry.MedianSAT,
		&entry.MedianACT,
		&entry.AvgGPA,
		&entry.Enrollment,
		&entry.CostOfAttendance,
		&entry.DeadlineDate,
		&entry.DeadlineType,
		&entry.LORsRequired,
		&essays,
		&entry.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog entry: %w", err)
	}

	if err := json.Unmarshal(essays, &entry.Essays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal essays: %w", err)
	}

	return &entry, nil
}
