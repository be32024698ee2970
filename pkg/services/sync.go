package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// SyncService keeps a student's college list, essays, and starter tasks in
// line with the catalog. Every operation is idempotent in effect: running
// it again creates nothing new.
type SyncService interface {
	// AddCollegeForUser puts the college on the student's list and syncs
	// its essays and starter tasks. Re-adding an existing college is a
	// success and still re-syncs, healing any prior partial sync.
	AddCollegeForUser(ctx context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) (*AddCollegeResult, error)

	// SyncEssaysAndTasks materializes the catalog entry for one college
	// into the student's essay and task records. Returns the number of
	// newly created records; pre-existing records are silently skipped.
	SyncEssaysAndTasks(ctx context.Context, userID uuid.UUID, collegeName string) (int, error)

	// SyncAllForUser runs SyncEssaysAndTasks for every college on the
	// student's list.
	SyncAllForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// FindUserCollege looks up one of the student's colleges by exact
	// name, falling back to a case-insensitive substring scan.
	FindUserCollege(ctx context.Context, userID uuid.UUID, name string) (*models.UserCollege, error)
}

// AddCollegeResult reports the outcome of an add.
type AddCollegeResult struct {
	CollegeID      uuid.UUID `json:"college_id"`
	CollegeName    string    `json:"college_name"`
	AlreadyOnList  bool      `json:"already_on_list"`
	RecordsCreated int       `json:"records_created"`
}

type syncService struct {
	research ResearchService
	colleges repositories.CollegeRepository
	essays   repositories.EssayRepository
	tasks    repositories.TaskRepository
	logger   *zap.Logger
}

// NewSyncService creates a new sync service.
func NewSyncService(
	research ResearchService,
	colleges repositories.CollegeRepository,
	essays repositories.EssayRepository,
	tasks repositories.TaskRepository,
	logger *zap.Logger,
) SyncService {
	return &syncService{
		research: research,
		colleges: colleges,
		essays:   essays,
		tasks:    tasks,
		logger:   logger.Named("sync"),
	}
}

const personalStatementTitle = "Common App Personal Statement"

// ucPIQPrompts are the University of California Personal Insight Questions.
// Placeholders are created lazily per student, one essay per question.
var ucPIQPrompts = []string{
	"Describe an example of your leadership experience in which you have positively influenced others, helped resolve disputes or contributed to group efforts over time.",
	"Every person has a creative side, and it can be expressed in many ways: problem solving, original and innovative thinking, and artistically, to name a few. Describe how you express your creative side.",
	"What would you say is your greatest talent or skill? How have you developed and demonstrated that talent over time?",
	"Describe how you have taken advantage of a significant educational opportunity or worked to overcome an educational barrier you have faced.",
	"Describe the most significant challenge you have faced and the steps you have taken to overcome this challenge. How has this challenge affected your academic achievement?",
	"Think about an academic subject that inspires you. Describe how you have furthered this interest inside and/or outside of the classroom.",
	"What have you done to make your school or your community a better place?",
	"Beyond what has already been shared in your application, what do you believe makes you a strong candidate for admissions to the University of California?",
}

func (s *syncService) AddCollegeForUser(ctx context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) (*AddCollegeResult, error) {
	entry, err := s.resolveComplete(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &AddCollegeResult{CollegeName: entry.Name}

	existing, err := s.colleges.GetByUserAndName(ctx, userID, entry.Name)
	switch {
	case err == nil:
		result.CollegeID = existing.ID
		result.AlreadyOnList = true
	case errors.Is(err, apperrors.ErrNotFound):
		if collegeType == "" {
			collegeType = models.CollegeTypeTarget
		}
		college := &models.UserCollege{
			UserID:              userID,
			Name:                entry.Name,
			ApplicationPlatform: entry.ApplicationPlatform,
			Type:                collegeType,
			Status:              models.CollegeStatusNotStarted,
		}
		if err := s.colleges.Create(ctx, college); err != nil {
			if !errors.Is(err, apperrors.ErrConflict) {
				return nil, fmt.Errorf("failed to add college: %w", err)
			}
			// Lost a check-then-insert race; the row exists now
			existing, err := s.colleges.GetByUserAndName(ctx, userID, entry.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to add college: %w", err)
			}
			college = existing
			result.AlreadyOnList = true
		} else {
			result.RecordsCreated++
		}
		result.CollegeID = college.ID
	default:
		return nil, fmt.Errorf("failed to check college list: %w", err)
	}

	created, err := s.SyncEssaysAndTasks(ctx, userID, entry.Name)
	if err != nil {
		return nil, err
	}
	result.RecordsCreated += created

	s.logger.Info("college added",
		zap.String("user_id", userID.String()),
		zap.String("college", entry.Name),
		zap.Bool("already_on_list", result.AlreadyOnList),
		zap.Int("records_created", result.RecordsCreated))

	return result, nil
}

func (s *syncService) SyncEssaysAndTasks(ctx context.Context, userID uuid.UUID, collegeName string) (int, error) {
	entry, err := s.resolveComplete(ctx, collegeName)
	if err != nil {
		return 0, err
	}

	college, err := s.FindUserCollege(ctx, userID, entry.Name)
	if err != nil {
		return 0, fmt.Errorf("college not on student's list: %w", err)
	}

	created := 0

	n, err := s.syncPlatformEssays(ctx, userID, entry.ApplicationPlatform)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.syncSupplementalEssays(ctx, userID, college.ID, entry)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.syncStarterTasks(ctx, userID, college.ID, entry.Name)
	if err != nil {
		return created, err
	}
	created += n

	return created, nil
}

func (s *syncService) SyncAllForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	colleges, err := s.colleges.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list colleges: %w", err)
	}

	total := 0
	for _, college := range colleges {
		created, err := s.SyncEssaysAndTasks(ctx, userID, college.Name)
		if err != nil {
			return total, fmt.Errorf("sync failed for %s: %w", college.Name, err)
		}
		total += created
	}

	return total, nil
}

func (s *syncService) FindUserCollege(ctx context.Context, userID uuid.UUID, name string) (*models.UserCollege, error) {
	college, err := s.colleges.GetByUserAndName(ctx, userID, name)
	if err == nil {
		return college, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	colleges, err := s.colleges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(colleges))
	for i, c := range colleges {
		names[i] = c.Name
	}

	match, ok := FindBestMatch(name, names)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	for i := range colleges {
		if colleges[i].Name == match {
			return &colleges[i], nil
		}
	}

	return nil, apperrors.ErrNotFound
}

// resolveComplete resolves the catalog entry, escalating to a forced
// refresh when the stored entry has no essays. A prior partial research
// pass must not permanently poison the catalog.
func (s *syncService) resolveComplete(ctx context.Context, name string) (*models.CatalogEntry, error) {
	entry, err := s.research.ResolveCollege(ctx, name, false)
	if err != nil {
		return nil, err
	}

	if !entry.IsComplete() {
		s.logger.Info("catalog entry has no essays, forcing refresh",
			zap.String("college", entry.Name))
		entry, err = s.research.ResolveCollege(ctx, entry.Name, true)
		if err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// syncPlatformEssays ensures the platform-wide essays exist: one Common App
// personal statement, or the eight UC PIQ placeholders. These essays carry
// no college_id.
func (s *syncService) syncPlatformEssays(ctx context.Context, userID uuid.UUID, platform models.ApplicationPlatform) (int, error) {
	switch platform {
	case models.PlatformCommonApp:
		has, err := s.hasPersonalStatement(ctx, userID)
		if err != nil {
			return 0, err
		}
		if has {
			return 0, nil
		}

		essay := &models.Essay{
			UserID:    userID,
			Title:     personalStatementTitle,
			Prompt:    "Share an essay on any topic of your choice. It can be one you've already written, one that responds to a different prompt, or one of your own design.",
			WordLimit: 650,
			EssayType: models.EssayTypePersonalStatement,
		}
		if err := s.essays.Create(ctx, essay); err != nil {
			return 0, err
		}
		return 1, nil

	case models.PlatformUCApp:
		created := 0
		for i, prompt := range ucPIQPrompts {
			title := fmt.Sprintf("UC PIQ #%d", i+1)
			exists, err := s.essays.Exists(ctx, userID, nil, title)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			essay := &models.Essay{
				UserID:    userID,
				Title:     title,
				Prompt:    prompt,
				WordLimit: 350,
				EssayType: models.EssayTypeUCPIQ,
			}
			if err := s.essays.Create(ctx, essay); err != nil {
				return created, err
			}
			created++
		}
		return created, nil
	}

	return 0, nil
}

// hasPersonalStatement matches by essay type or by a title-contains
// heuristic, so statements created before typed records still count.
func (s *syncService) hasPersonalStatement(ctx context.Context, userID uuid.UUID) (bool, error) {
	essays, err := s.essays.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, essay := range essays {
		if essay.EssayType == models.EssayTypePersonalStatement {
			return true, nil
		}
		if strings.Contains(strings.ToLower(essay.Title), "common app personal statement") {
			return true, nil
		}
	}

	return false, nil
}

func (s *syncService) syncSupplementalEssays(ctx context.Context, userID, collegeID uuid.UUID, entry *models.CatalogEntry) (int, error) {
	created := 0
	for _, catalogEssay := range entry.Essays {
		title := fmt.Sprintf("%s - %s", entry.Name, catalogEssay.Title)

		exists, err := s.essays.Exists(ctx, userID, &collegeID, title)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		essayType := catalogEssay.EssayType
		if essayType == "" {
			essayType = models.EssayTypeSupplemental
		}
		essay := &models.Essay{
			UserID:    userID,
			CollegeID: &collegeID,
			Title:     title,
			Prompt:    catalogEssay.Prompt,
			WordLimit: catalogEssay.WordLimit,
			EssayType: essayType,
		}
		if err := s.essays.Create(ctx, essay); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func (s *syncService) syncStarterTasks(ctx context.Context, userID, collegeID uuid.UUID, collegeName string) (int, error) {
	starters := []models.Task{
		{
			Title:       fmt.Sprintf("Draft essays for %s", collegeName),
			Description: "Start drafting the required essays.",
			Priority:    models.TaskPriorityHigh,
			Category:    "Essays",
		},
		{
			Title:       fmt.Sprintf("Request transcripts for %s", collegeName),
			Description: "Ask your counselor to send official transcripts.",
			Priority:    models.TaskPriorityMedium,
			Category:    "Documents",
		},
		{
			Title:       fmt.Sprintf("Finalize recommendation letters for %s", collegeName),
			Description: "Confirm your recommenders and deadlines.",
			Priority:    models.TaskPriorityMedium,
			Category:    "Recommendations",
		},
	}

	created := 0
	for i := range starters {
		task := starters[i]
		exists, err := s.tasks.Exists(ctx, userID, &collegeID, task.Title)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		task.UserID = userID
		task.CollegeID = &collegeID
		if err := s.tasks.Create(ctx, &task); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
