package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/prompts"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// strategistFallback is returned when the strategist oracle times out or
// fails. The client timeout lives in the Anthropic client.
const strategistFallback = "I need a bit more time to think that through than I have right now. Ask me again in a moment, or break the question into smaller parts."

// StrategistService runs the deeper-reasoning conversation. No tools; the
// whole student record rides in the system prompt.
type StrategistService interface {
	Chat(ctx context.Context, userID uuid.UUID, message string, history []models.HistoryMessage) (*ChatResult, error)
}

type strategistService struct {
	oracle        llm.StrategistClient
	colleges      repositories.CollegeRepository
	essays        repositories.EssayRepository
	profiles      repositories.ProfileRepository
	conversations repositories.ConversationRepository
	logger        *zap.Logger
}

// NewStrategistService creates the strategist conversation service.
func NewStrategistService(
	oracle llm.StrategistClient,
	colleges repositories.CollegeRepository,
	essays repositories.EssayRepository,
	profiles repositories.ProfileRepository,
	conversations repositories.ConversationRepository,
	logger *zap.Logger,
) StrategistService {
	return &strategistService{
		oracle:        oracle,
		colleges:      colleges,
		essays:        essays,
		profiles:      profiles,
		conversations: conversations,
		logger:        logger.Named("strategist"),
	}
}

func (s *strategistService) Chat(ctx context.Context, userID uuid.UUID, message string, history []models.HistoryMessage) (*ChatResult, error) {
	if message == "" {
		return nil, apperrors.ErrInvalidArgument
	}

	snapshot := s.buildSnapshot(ctx, userID)
	systemPrompt := prompts.BuildStrategistSystemPrompt(snapshot)

	messages := buildHistoryMessages(history)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	answer, err := s.oracle.Converse(ctx, systemPrompt, messages)
	if err != nil {
		s.logger.Error("strategist oracle call failed", zap.Error(err))
		result := &ChatResult{Response: strategistFallback}
		s.persist(ctx, userID, message, result.Response)
		return result, nil
	}

	result := &ChatResult{Response: answer}
	s.persist(ctx, userID, message, answer)
	return result, nil
}

func (s *strategistService) buildSnapshot(ctx context.Context, userID uuid.UUID) *prompts.StudentSnapshot {
	snapshot := &prompts.StudentSnapshot{}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("profile fetch failed", zap.Error(err))
		}
	} else {
		snapshot.Profile = profile
	}

	if colleges, err := s.colleges.ListByUser(ctx, userID); err != nil {
		s.logger.Warn("college fetch failed", zap.Error(err))
	} else {
		snapshot.Colleges = colleges
	}

	if essays, err := s.essays.ListByUser(ctx, userID); err != nil {
		s.logger.Warn("essay fetch failed", zap.Error(err))
	} else {
		snapshot.Essays = essays
	}

	return snapshot
}

func (s *strategistService) persist(ctx context.Context, userID uuid.UUID, message, response string) {
	userTurn := &models.ConversationTurn{
		UserID:  userID,
		Role:    models.ChatRoleUser,
		Content: message,
		Metadata: map[string]any{
			"mode": "strategist",
		},
	}
	assistantTurn := &models.ConversationTurn{
		UserID:  userID,
		Role:    models.ChatRoleAssistant,
		Content: response,
		Metadata: map[string]any{
			"mode": "strategist",
		},
	}

	if err := s.conversations.Append(ctx, userTurn, assistantTurn); err != nil {
		s.logger.Warn("failed to persist conversation", zap.Error(err))
	}
}
