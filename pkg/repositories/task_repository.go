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

// TaskRepository defines data access for student tasks.
type TaskRepository interface {
	// Exists reports whether the student already has a task with this
	// title scoped to the given college.
	Exists(ctx context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error)

	Create(ctx context.Context, task *models.Task) error
	GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Complete(ctx context.Context, userID uuid.UUID, title string) error
	Delete(ctx context.Context, userID uuid.UUID, title string) error
}

type taskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *database.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, college_id, title, description, priority, category,
	completed, status, created_at, updated_at`

func (r *taskRepository) Exists(ctx context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE user_id = $1 AND college_id IS NOT DISTINCT FROM $2 AND title = $3
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, collegeID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}

	return exists, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}

	query := `
		INSERT INTO tasks (user_id, college_id, title, description, priority, category, completed, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		task.UserID,
		task.CollegeID,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
		task.Completed,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND title = $2 LIMIT 1`

	var task models.Task
	err := r.db.QueryRow(ctx, query, userID, title).Scan(
		&task.ID,
		&task.UserID,
		&task.CollegeID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Category,
		&task.Completed,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.CollegeID,
			&task.Title,
			&task.Description,
			&task.Priority,
			&task.Category,
			&task.Completed,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, category = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Priority,
		task.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *taskRepository) Complete(ctx context.Context, userID uuid.UUID, title string) error {
	query := `
		UPDATE tasks
		SET completed = TRUE, status = $3, updated_at = now()
		WHERE user_id = $1 AND title = $2`

	tag, err := r.db.Exec(ctx, query, userID, title, models.TaskStatusDone)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, userID uuid.UUID, title string) error {
	query := `DELETE FROM tasks WHERE user_id = $1 AND title = $2`

	tag, err := r.db.Exec(ctx, query, userID, title)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
