package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/prompts"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// ResearchService resolves college names to canonical catalog entries,
// researching through the oracle when the catalog has no complete entry.
type ResearchService interface {
	// ResolveCollege returns the catalog entry for name. A stored entry is
	// returned as-is when it is complete and forceRefresh is false;
	// otherwise the oracle is queried and the result upserted by canonical
	// name. Oracle responses that fail to parse as JSON fail this call;
	// there is no retry.
	ResolveCollege(ctx context.Context, name string, forceRefresh bool) (*models.CatalogEntry, error)
}

type researchService struct {
	catalog repositories.CatalogRepository
	oracle  llm.ChatClient
	logger  *zap.Logger
}

// NewResearchService creates a new research service.
func NewResearchService(catalog repositories.CatalogRepository, oracle llm.ChatClient, logger *zap.Logger) ResearchService {
	return &researchService{
		catalog: catalog,
		oracle:  oracle,
		logger:  logger.Named("research"),
	}
}

// researchedEntry is the JSON shape the oracle is instructed to return.
type researchedEntry struct {
	Name                string                `json:"name"`
	Description         string                `json:"description"`
	Location            string                `json:"location"`
	Website             string                `json:"website"`
	ApplicationPlatform string                `json:"application_platform"`
	AcceptanceRate      *float64              `json:"acceptance_rate"`
	MedianSAT           *int                  `json:"median_sat"`
	MedianACT           *int                  `json:"median_act"`
	AvgGPA              *float64              `json:"avg_gpa"`
	Enrollment          *int                  `json:"enrollment"`
	CostOfAttendance    *int                  `json:"cost_of_attendance"`
	DeadlineDate        string                `json:"deadline_date"`
	DeadlineType        string                `json:"deadline_type"`
	LORsRequired        int                   `json:"lors_required"`
	Essays              []models.CatalogEssay `json:"essays"`
}

func (s *researchService) ResolveCollege(ctx context.Context, name string, forceRefresh bool) (*models.CatalogEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument
	}

	candidate := s.lookup(ctx, name)
	if candidate != nil && !forceRefresh && candidate.IsComplete() {
		s.logger.Debug("catalog hit",
			zap.String("name", name),
			zap.String("canonical", candidate.Name))
		return candidate, nil
	}

	entry, err := s.research(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.Upsert(ctx, entry); err != nil {
		// The parsed entry is still usable this turn
		s.logger.Error("failed to store researched entry",
			zap.String("name", entry.Name),
			zap.Error(err))
	}

	return entry, nil
}

// lookup tries an exact match, then a case-insensitive substring match.
// Lookup failures are treated as misses; research proceeds either way.
func (s *researchService) lookup(ctx context.Context, name string) *models.CatalogEntry {
	entry, err := s.catalog.GetByName(ctx, name)
	if err == nil {
		return entry
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("exact catalog lookup failed", zap.String("name", name), zap.Error(err))
	}

	entry, err = s.catalog.SearchByName(ctx, name)
	if err == nil {
		return entry
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("fuzzy catalog lookup failed", zap.String("name", name), zap.Error(err))
	}

	return nil
}

func (s *researchService) research(ctx context.Context, name string) (*models.CatalogEntry, error) {
	s.logger.Info("researching college", zap.String("name", name))

	instruction := prompts.BuildCollegeResearchInstruction(name)
	raw, err := s.oracle.GenerateJSON(ctx, instruction)
	if err != nil {
		return nil, fmt.Errorf("research oracle call failed: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[researchedEntry](raw)
	if err != nil {
		return nil, fmt.Errorf("research response was not valid JSON: %w", err)
	}

	entry := &models.CatalogEntry{
		Name:                parsed.Name,
		Description:         parsed.Description,
		Location:            parsed.Location,
		Website:             parsed.Website,
		ApplicationPlatform: models.ApplicationPlatform(parsed.ApplicationPlatform),
		AcceptanceRate:      parsed.AcceptanceRate,
		MedianSAT:           parsed.MedianSAT,
		MedianACT:           parsed.MedianACT,
		AvgGPA:              parsed.AvgGPA,
		Enrollment:          parsed.Enrollment,
		CostOfAttendance:    parsed.CostOfAttendance,
		DeadlineDate:        parsed.DeadlineDate,
		DeadlineType:        models.DeadlineType(parsed.DeadlineType),
		LORsRequired:        parsed.LORsRequired,
		Essays:              parsed.Essays,
	}
	if entry.Name == "" {
		entry.Name = name
	}
	if !models.IsValidApplicationPlatform(entry.ApplicationPlatform) {
		entry.ApplicationPlatform = models.PlatformCommonApp
	}
	if entry.Essays == nil {
		entry.Essays = []models.CatalogEssay{}
	}
	for i := range entry.Essays {
		if entry.Essays[i].EssayType == "" {
			entry.Essays[i].EssayType = models.EssayTypeSupplemental
		}
	}

	s.logger.Info("research complete",
		zap.String("canonical", entry.Name),
		zap.Int("essays", len(entry.Essays)))

	return entry, nil
}
