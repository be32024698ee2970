package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EssayType classifies an essay record.
type EssayType string

const (
	EssayTypePersonalStatement EssayType = "Personal Statement"
	EssayTypeUCPIQ             EssayType = "UC PIQ"
	EssayTypeSupplemental      EssayType = "Supplemental"
)

// ValidEssayTypes contains all valid essay type values.
var ValidEssayTypes = []EssayType{
	EssayTypePersonalStatement,
	EssayTypeUCPIQ,
	EssayTypeSupplemental,
}

// IsValidEssayType checks if the given type is valid.
func IsValidEssayType(t EssayType) bool {
	for _, v := range ValidEssayTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Essay is a student's essay record. CollegeID is nil for platform-wide
// essays such as the Common App personal statement and UC PIQs. Uniqueness
// is enforced by convention on (user_id, college_id, title); the sync engine
// never inserts a second essay with the same derived title for a user.
type Essay struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CollegeID   *uuid.UUID `json:"college_id,omitempty"`
	Title       string     `json:"title"`
	Prompt      string     `json:"prompt"`
	WordLimit   int        `json:"word_limit"`
	EssayType   EssayType  `json:"essay_type"`
	Content     string     `json:"content"`
	WordCount   int        `json:"word_count"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetContent writes essay content and recomputes the derived word count.
func (e *Essay) SetContent(content string) {
	e.Content = content
	e.WordCount = CountWords(content)
}

// CountWords counts whitespace-delimited tokens. Empty content yields 0.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
