package models

import (
	"time"

	"github.com/google/uuid"
)

// CollegeType classifies a college by admission likelihood for the student.
type CollegeType string

const (
	CollegeTypeReach  CollegeType = "Reach"
	CollegeTypeTarget CollegeType = "Target"
	CollegeTypeSafety CollegeType = "Safety"
)

// ValidCollegeTypes contains all valid college type values.
var ValidCollegeTypes = []CollegeType{
	CollegeTypeReach,
	CollegeTypeTarget,
	CollegeTypeSafety,
}

// IsValidCollegeType checks if the given type is valid.
func IsValidCollegeType(t CollegeType) bool {
	for _, v := range ValidCollegeTypes {
		if v == t {
			return true
		}
	}
	return false
}

// CollegeStatus tracks application progress for one college.
type CollegeStatus string

const (
	CollegeStatusNotStarted CollegeStatus = "Not Started"
	CollegeStatusInProgress CollegeStatus = "In Progress"
	CollegeStatusCompleted  CollegeStatus = "Completed"
)

// ValidCollegeStatuses contains all valid college status values.
var ValidCollegeStatuses = []CollegeStatus{
	CollegeStatusNotStarted,
	CollegeStatusInProgress,
	CollegeStatusCompleted,
}

// IsValidCollegeStatus checks if the given status is valid.
func IsValidCollegeStatus(s CollegeStatus) bool {
	for _, v := range ValidCollegeStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// UserCollege is a student's relationship to a college. The name is copied
// from the catalog entry at add-time, not joined; unique per (user_id, name).
type UserCollege struct {
	ID                  uuid.UUID           `json:"id"`
	UserID              uuid.UUID           `json:"user_id"`
	Name                string              `json:"name"`
	ApplicationPlatform ApplicationPlatform `json:"application_platform"`
	Type                CollegeType         `json:"type"`
	Status              CollegeStatus       `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
}
