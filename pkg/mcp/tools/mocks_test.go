package tools

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// authedContext returns a context carrying validated claims the way the MCP
// auth middleware would.
func authedContext(userID uuid.UUID) context.Context {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	return context.WithValue(context.Background(), auth.ClaimsKey, claims)
}

// mockSyncService is a configurable mock for college tool tests.
type mockSyncService struct {
	result *services.AddCollegeResult
	err    error

	lastUserID uuid.UUID
	lastName   string
	lastType   models.CollegeType
}

func (m *mockSyncService) AddCollegeForUser(_ context.Context, userID uuid.UUID, name string, collegeType models.CollegeType) (*services.AddCollegeResult, error) {
	m.lastUserID = userID
	m.lastName = name
	m.lastType = collegeType
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &services.AddCollegeResult{CollegeID: uuid.New(), CollegeName: name, RecordsCreated: 7}, nil
}

func (m *mockSyncService) SyncEssaysAndTasks(_ context.Context, _ uuid.UUID, _ string) (int, error) {
	return 0, nil
}

func (m *mockSyncService) SyncAllForUser(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (m *mockSyncService) FindUserCollege(_ context.Context, _ uuid.UUID, _ string) (*models.UserCollege, error) {
	return nil, nil
}

// mockResearchService is a configurable mock for research tool tests.
type mockResearchService struct {
	entry *models.CatalogEntry
	err   error
	calls int
}

func (m *mockResearchService) ResolveCollege(_ context.Context, name string, _ bool) (*models.CatalogEntry, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.entry != nil {
		return m.entry, nil
	}
	return &models.CatalogEntry{Name: name, ApplicationPlatform: models.PlatformCommonApp}, nil
}

// stubCollegeRepo serves ListByUser; other methods are unused by status tools.
type stubCollegeRepo struct {
	colleges []models.UserCollege
}

func (s *stubCollegeRepo) GetByUserAndName(_ context.Context, _ uuid.UUID, _ string) (*models.UserCollege, error) {
	return nil, nil
}
func (s *stubCollegeRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]models.UserCollege, error) {
	return s.colleges, nil
}
func (s *stubCollegeRepo) Create(_ context.Context, _ *models.UserCollege) error { return nil }
func (s *stubCollegeRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ string, _ models.CollegeStatus) error {
	return nil
}
func (s *stubCollegeRepo) UpdateType(_ context.Context, _ uuid.UUID, _ string, _ models.CollegeType) error {
	return nil
}

type stubTaskRepo struct {
	tasks []models.Task
}

func (s *stubTaskRepo) Exists(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ string) (bool, error) {
	return false, nil
}
func (s *stubTaskRepo) Create(_ context.Context, _ *models.Task) error { return nil }
func (s *stubTaskRepo) GetByTitle(_ context.Context, _ uuid.UUID, _ string) (*models.Task, error) {
	return nil, nil
}
func (s *stubTaskRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]models.Task, error) {
	return s.tasks, nil
}
func (s *stubTaskRepo) Update(_ context.Context, _ *models.Task) error            { return nil }
func (s *stubTaskRepo) Complete(_ context.Context, _ uuid.UUID, _ string) error   { return nil }
func (s *stubTaskRepo) Delete(_ context.Context, _ uuid.UUID, _ string) error     { return nil }

type stubEssayRepo struct {
	essays []models.Essay
}

func (s *stubEssayRepo) Exists(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ string) (bool, error) {
	return false, nil
}
func (s *stubEssayRepo) Create(_ context.Context, _ *models.Essay) error { return nil }
func (s *stubEssayRepo) GetByTitle(_ context.Context, _ uuid.UUID, _ string) (*models.Essay, error) {
	return nil, nil
}
func (s *stubEssayRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]models.Essay, error) {
	return s.essays, nil
}
func (s *stubEssayRepo) UpdateContent(_ context.Context, _ uuid.UUID, _, _ string, _ int) error {
	return nil
}
