package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority ranks a task's urgency.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// ValidTaskPriorities contains all valid priority values.
var ValidTaskPriorities = []TaskPriority{
	TaskPriorityHigh,
	TaskPriorityMedium,
	TaskPriorityLow,
}

// IsValidTaskPriority checks if the given priority is valid.
func IsValidTaskPriority(p TaskPriority) bool {
	for _, v := range ValidTaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a student's to-do item, optionally tied to one of their colleges.
// Same non-duplication convention as essays on (user_id, college_id, title).
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	CollegeID   *uuid.UUID   `json:"college_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	Completed   bool         `json:"completed"`
	Status      TaskStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
