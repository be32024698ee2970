package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// In-memory repository fakes. They enforce the same uniqueness rules as
// the real schema so idempotence tests mean something.

type fakeCatalogRepo struct {
	mu      sync.Mutex
	entries map[string]*models.CatalogEntry
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{entries: make(map[string]*models.CatalogEntry)}
}

func (f *fakeCatalogRepo) GetByName(_ context.Context, name string) (*models.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.entries[name]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCatalogRepo) SearchByName(_ context.Context, fragment string) (*models.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fragment = strings.ToLower(fragment)
	for name, entry := range f.entries {
		if strings.Contains(strings.ToLower(name), fragment) {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCatalogRepo) Upsert(_ context.Context, entry *models.CatalogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.entries[entry.Name]; ok {
		entry.ID = existing.ID
	} else if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	copied := *entry
	f.entries[entry.Name] = &copied
	return nil
}

var _ repositories.CatalogRepository = (*fakeCatalogRepo)(nil)

type fakeCollegeRepo struct {
	mu       sync.Mutex
	colleges []models.UserCollege
}

func (f *fakeCollegeRepo) GetByUserAndName(_ context.Context, userID uuid.UUID, name string) (*models.UserCollege, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.colleges {
		if f.colleges[i].UserID == userID && f.colleges[i].Name == name {
			copied := f.colleges[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeCollegeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.UserCollege, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UserCollege
	for _, c := range f.colleges {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCollegeRepo) Create(_ context.Context, college *models.UserCollege) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.colleges {
		if c.UserID == college.UserID && c.Name == college.Name {
			return apperrors.ErrConflict
		}
	}
	college.ID = uuid.New()
	f.colleges = append(f.colleges, *college)
	return nil
}

func (f *fakeCollegeRepo) UpdateStatus(_ context.Context, userID uuid.UUID, name string, status models.CollegeStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.colleges {
		if f.colleges[i].UserID == userID && f.colleges[i].Name == name {
			f.colleges[i].Status = status
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeCollegeRepo) UpdateType(_ context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.colleges {
		if f.colleges[i].UserID == userID && f.colleges[i].Name == name {
			f.colleges[i].Type = collegeType
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var _ repositories.CollegeRepository = (*fakeCollegeRepo)(nil)

type fakeEssayRepo struct {
	mu     sync.Mutex
	essays []models.Essay
}

func sameCollege(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeEssayRepo) Exists(_ context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.essays {
		if f.essays[i].UserID == userID && sameCollege(f.essays[i].CollegeID, collegeID) && f.essays[i].Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEssayRepo) Create(_ context.Context, essay *models.Essay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	essay.ID = uuid.New()
	f.essays = append(f.essays, *essay)
	return nil
}

func (f *fakeEssayRepo) GetByTitle(_ context.Context, userID uuid.UUID, title string) (*models.Essay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.essays {
		if f.essays[i].UserID == userID && f.essays[i].Title == title {
			copied := f.essays[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeEssayRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Essay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Essay
	for _, e := range f.essays {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEssayRepo) UpdateContent(_ context.Context, userID uuid.UUID, title, content string, wordCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.essays {
		if f.essays[i].UserID == userID && f.essays[i].Title == title {
			f.essays[i].Content = content
			f.essays[i].WordCount = wordCount
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var _ repositories.EssayRepository = (*fakeEssayRepo)(nil)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks []models.Task
}

func (f *fakeTaskRepo) Exists(_ context.Context, userID uuid.UUID, collegeID *uuid.UUID, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].UserID == userID && sameCollege(f.tasks[i].CollegeID, collegeID) && f.tasks[i].Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.ID = uuid.New()
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) GetByTitle(_ context.Context, userID uuid.UUID, title string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].UserID == userID && f.tasks[i].Title == title {
			copied := f.tasks[i]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = *task
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeTaskRepo) Complete(_ context.Context, userID uuid.UUID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].UserID == userID && f.tasks[i].Title == title {
			f.tasks[i].Completed = true
			f.tasks[i].Status = models.TaskStatusDone
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeTaskRepo) Delete(_ context.Context, userID uuid.UUID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].UserID == userID && f.tasks[i].Title == title {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var _ repositories.TaskRepository = (*fakeTaskRepo)(nil)

type fakeProfileRepo struct {
	mu         sync.Mutex
	profiles   map[uuid.UUID]*models.Profile
	activities []models.Activity
	awards     []models.Award
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) Get(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile, ok := f.profiles[userID]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfileRepo) ListActivities(_ context.Context, userID uuid.UUID) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Activity
	for _, a := range f.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListAwards(_ context.Context, userID uuid.UUID) ([]models.Award, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Award
	for _, a := range f.awards {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

var _ repositories.ProfileRepository = (*fakeProfileRepo)(nil)

type fakeConversationRepo struct {
	mu    sync.Mutex
	turns []models.ConversationTurn
}

func (f *fakeConversationRepo) Append(_ context.Context, turns ...*models.ConversationTurn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, turn := range turns {
		turn.ID = uuid.New()
		f.turns = append(f.turns, *turn)
	}
	return nil
}

func (f *fakeConversationRepo) History(_ context.Context, userID uuid.UUID, limit int) ([]models.ConversationTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ConversationTurn
	for _, turn := range f.turns {
		if turn.UserID == userID {
			out = append(out, turn)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

var _ repositories.ConversationRepository = (*fakeConversationRepo)(nil)
