package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a student's application profile.
type Profile struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	IntendedMajor  string    `json:"intended_major"`
	GraduationYear *int      `json:"graduation_year,omitempty"`
	UnweightedGPA  *float64  `json:"unweighted_gpa,omitempty"`
	SATScore       *int      `json:"sat_score,omitempty"`
	ACTScore       *int      `json:"act_score,omitempty"`
	VoiceMode      bool      `json:"voice_mode"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Activity is an extracurricular entry on the student's profile.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Years       string    `json:"years"`
	CreatedAt   time.Time `json:"created_at"`
}

// Award is an honor or award entry on the student's profile.
type Award struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Level     string    `json:"level"`
	Year      *int      `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
