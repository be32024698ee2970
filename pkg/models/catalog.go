package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Application Platforms
// ============================================================================

// ApplicationPlatform identifies the application system a college uses.
type ApplicationPlatform string

const (
	PlatformCommonApp    ApplicationPlatform = "Common App"
	PlatformCoalitionApp ApplicationPlatform = "Coalition App"
	PlatformUCApp        ApplicationPlatform = "UC App"
)

// ValidApplicationPlatforms contains all valid platform values.
var ValidApplicationPlatforms = []ApplicationPlatform{
	PlatformCommonApp,
	PlatformCoalitionApp,
	PlatformUCApp,
}

// IsValidApplicationPlatform checks if the given platform is valid.
func IsValidApplicationPlatform(p ApplicationPlatform) bool {
	for _, v := range ValidApplicationPlatforms {
		if v == p {
			return true
		}
	}
	return false
}

// ============================================================================
// Deadline Types
// ============================================================================

// DeadlineType identifies the admission round a deadline belongs to.
type DeadlineType string

const (
	DeadlineRegular        DeadlineType = "RD"
	DeadlineEarlyDecision  DeadlineType = "ED"
	DeadlineEarlyAction    DeadlineType = "EA"
)

// ============================================================================
// Catalog Entry
// ============================================================================

// CatalogEssay is one required essay in a catalog entry.
type CatalogEssay struct {
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	WordLimit int       `json:"word_limit"`
	EssayType EssayType `json:"essay_type,omitempty"`
}

// CatalogEntry is the shared, user-independent record of a college's public
// facts and essay prompts. The canonical name is the dedup key; at most one
// entry exists per name.
type CatalogEntry struct {
	ID                  uuid.UUID           `json:"id"`
	Name                string              `json:"name"`
	Description         string              `json:"description"`
	Location            string              `json:"location"`
	Website             string              `json:"website"`
	ApplicationPlatform ApplicationPlatform `json:"application_platform"`
	AcceptanceRate      *float64            `json:"acceptance_rate,omitempty"`
	MedianSAT           *int                `json:"median_sat,omitempty"`
	MedianACT           *int                `json:"median_act,omitempty"`
	AvgGPA              *float64            `json:"avg_gpa,omitempty"`
	Enrollment          *int                `json:"enrollment,omitempty"`
	CostOfAttendance    *int                `json:"cost_of_attendance,omitempty"`
	DeadlineDate        string              `json:"deadline_date"`
	DeadlineType        DeadlineType        `json:"deadline_type"`
	LORsRequired        int                 `json:"lors_required"`
	Essays              []CatalogEssay      `json:"essays"`
	LastUpdated         time.Time           `json:"last_updated"`
}

// IsComplete reports whether the entry carries a researched essay list.
// An entry without essays is treated as a partial research result and is
// re-researched on the next add-path resolve.
func (e *CatalogEntry) IsComplete() bool {
	return len(e.Essays) > 0
}
