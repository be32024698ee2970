package handlers

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// withAuthedUser injects validated claims the way the auth middleware would.
func withAuthedUser(r *http.Request, userID uuid.UUID) *http.Request {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		Email:            "student@example.com",
	}
	ctx := context.WithValue(r.Context(), auth.ClaimsKey, claims)
	return r.WithContext(ctx)
}

// mockCounselorService is a configurable mock for chat handler tests.
type mockCounselorService struct {
	result *services.ChatResult
	err    error

	lastMessage string
	calls       int
}

func (m *mockCounselorService) Chat(_ context.Context, _ uuid.UUID, message string, _ []models.HistoryMessage) (*services.ChatResult, error) {
	m.calls++
	m.lastMessage = message
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &services.ChatResult{Response: "Happy to help."}, nil
}

// mockStrategistService is a configurable mock for strategist handler tests.
type mockStrategistService struct {
	result *services.ChatResult
	err    error
	calls  int
}

func (m *mockStrategistService) Chat(_ context.Context, _ uuid.UUID, _ string, _ []models.HistoryMessage) (*services.ChatResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &services.ChatResult{Response: "Here is the plan."}, nil
}

// mockSyncService is a configurable mock for college and essay handler tests.
type mockSyncService struct {
	addResult *services.AddCollegeResult
	addErr    error
	syncCount int
	syncErr   error

	lastName string
	lastType models.CollegeType
}

func (m *mockSyncService) AddCollegeForUser(_ context.Context, _ uuid.UUID, name string, collegeType models.CollegeType) (*services.AddCollegeResult, error) {
	m.lastName = name
	m.lastType = collegeType
	if m.addErr != nil {
		return nil, m.addErr
	}
	if m.addResult != nil {
		return m.addResult, nil
	}
	return &services.AddCollegeResult{CollegeID: uuid.New(), CollegeName: name, RecordsCreated: 7}, nil
}

func (m *mockSyncService) SyncEssaysAndTasks(_ context.Context, _ uuid.UUID, _ string) (int, error) {
	return m.syncCount, m.syncErr
}

func (m *mockSyncService) SyncAllForUser(_ context.Context, _ uuid.UUID) (int, error) {
	return m.syncCount, m.syncErr
}

func (m *mockSyncService) FindUserCollege(_ context.Context, _ uuid.UUID, _ string) (*models.UserCollege, error) {
	return nil, nil
}

// mockResearchService is a configurable mock for research handler tests.
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

// mockFeedbackService is a configurable mock for feedback handler tests.
type mockFeedbackService struct {
	err    error
	ticket *models.Ticket
}

func (m *mockFeedbackService) Submit(_ context.Context, ticket *models.Ticket) error {
	if m.err != nil {
		return m.err
	}
	ticket.ID = uuid.New()
	m.ticket = ticket
	return nil
}

var (
	_ services.CounselorService  = (*mockCounselorService)(nil)
	_ services.StrategistService = (*mockStrategistService)(nil)
	_ services.SyncService       = (*mockSyncService)(nil)
	_ services.ResearchService   = (*mockResearchService)(nil)
	_ services.FeedbackService   = (*mockFeedbackService)(nil)
)
