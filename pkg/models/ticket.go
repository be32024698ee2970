package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a feedback or support submission.
type Ticket struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	UserEmail string     `json:"user_email"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
