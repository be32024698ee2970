package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/cache"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/prompts"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// degradedResponse is returned when the oracle fails mid-turn. The next
// user message simply tries again; nothing is retried automatically.
const degradedResponse = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

// CounselorService runs the counselor conversation loop: one oracle call
// with the tool catalog, at most one tool dispatch, and one follow-up call
// to phrase the result.
type CounselorService interface {
	Chat(ctx context.Context, userID uuid.UUID, message string, history []models.HistoryMessage) (*ChatResult, error)
}

// ChatResult is the outcome of one conversation turn.
type ChatResult struct {
	Response       string `json:"response"`
	FunctionCalled string `json:"functionCalled,omitempty"`
}

type counselorService struct {
	oracle        llm.ChatClient
	sync          SyncService
	research      ResearchService
	colleges      repositories.CollegeRepository
	essays        repositories.EssayRepository
	tasks         repositories.TaskRepository
	profiles      repositories.ProfileRepository
	conversations repositories.ConversationRepository
	cache         cache.Cache
	researchTTL   time.Duration
	logger        *zap.Logger
}

// CounselorServiceConfig holds dependencies for the counselor service.
type CounselorServiceConfig struct {
	Oracle        llm.ChatClient
	Sync          SyncService
	Research      ResearchService
	Colleges      repositories.CollegeRepository
	Essays        repositories.EssayRepository
	Tasks         repositories.TaskRepository
	Profiles      repositories.ProfileRepository
	Conversations repositories.ConversationRepository
	Cache         cache.Cache
	ResearchTTL   time.Duration
	Logger        *zap.Logger
}

// NewCounselorService creates the counselor conversation service.
func NewCounselorService(cfg *CounselorServiceConfig) CounselorService {
	return &counselorService{
		oracle:        cfg.Oracle,
		sync:          cfg.Sync,
		research:      cfg.Research,
		colleges:      cfg.Colleges,
		essays:        cfg.Essays,
		tasks:         cfg.Tasks,
		profiles:      cfg.Profiles,
		conversations: cfg.Conversations,
		cache:         cfg.Cache,
		researchTTL:   cfg.ResearchTTL,
		logger:        cfg.Logger.Named("counselor"),
	}
}

var _ CounselorService = (*counselorService)(nil)

func (s *counselorService) Chat(ctx context.Context, userID uuid.UUID, message string, history []models.HistoryMessage) (*ChatResult, error) {
	if message == "" {
		return nil, apperrors.ErrInvalidArgument
	}

	snapshot := s.buildContext(ctx, userID)
	voiceMode := snapshot.Profile != nil && snapshot.Profile.VoiceMode
	systemPrompt := prompts.BuildCounselorSystemPrompt(snapshot, voiceMode)

	messages := buildHistoryMessages(history)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	first, err := s.oracle.Chat(ctx, &llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages:     messages,
		Tools:        llm.GetCounselorTools(),
	})
	if err != nil {
		s.logger.Error("first oracle call failed", zap.Error(err))
		result := &ChatResult{Response: degradedResponse}
		s.persistExchange(ctx, userID, message, result)
		return result, nil
	}

	if !first.HasToolCall() {
		result := &ChatResult{Response: first.Content}
		s.persistExchange(ctx, userID, message, result)
		return result, nil
	}

	// Exactly one tool call is honored per user message; extra calls in
	// the same response are ignored.
	call := first.ToolCalls[0]
	executor := s.executorFor(userID)

	toolResult, err := executor.ExecuteTool(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		s.logger.Error("tool dispatch failed",
			zap.String("tool", call.Function.Name),
			zap.Error(err))
		result := &ChatResult{Response: degradedResponse, FunctionCalled: call.Function.Name}
		s.persistExchange(ctx, userID, message, result)
		return result, nil
	}

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, ToolCalls: first.ToolCalls[:1]},
		llm.Message{Role: llm.RoleTool, Content: toolResult, ToolCallID: call.ID},
	)

	second, err := s.oracle.Chat(ctx, &llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages:     messages,
	})
	if err != nil {
		s.logger.Error("second oracle call failed", zap.Error(err))
		result := &ChatResult{Response: degradedResponse, FunctionCalled: call.Function.Name}
		s.persistExchange(ctx, userID, message, result)
		return result, nil
	}

	result := &ChatResult{
		Response:       second.Content,
		FunctionCalled: call.Function.Name,
	}
	s.persistExchange(ctx, userID, message, result, toolResult)
	return result, nil
}

// buildContext fetches the student snapshot. The six reads are independent
// and issued concurrently; a failed read degrades to an empty section
// rather than failing the turn.
func (s *counselorService) buildContext(ctx context.Context, userID uuid.UUID) *prompts.StudentSnapshot {
	snapshot := &prompts.StudentSnapshot{}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		profile, err := s.profiles.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("profile fetch failed", zap.Error(err))
			}
			return
		}
		snapshot.Profile = profile
	}()
	go func() {
		defer wg.Done()
		colleges, err := s.colleges.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("college fetch failed", zap.Error(err))
			return
		}
		snapshot.Colleges = colleges
	}()
	go func() {
		defer wg.Done()
		tasks, err := s.tasks.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("task fetch failed", zap.Error(err))
			return
		}
		snapshot.Tasks = tasks
	}()
	go func() {
		defer wg.Done()
		essays, err := s.essays.ListByUser(ctx, userID)
		if err != nil {
			s.logger.Warn("essay fetch failed", zap.Error(err))
			return
		}
		snapshot.Essays = essays
	}()
	go func() {
		defer wg.Done()
		activities, err := s.profiles.ListActivities(ctx, userID)
		if err != nil {
			s.logger.Warn("activity fetch failed", zap.Error(err))
			return
		}
		snapshot.Activities = activities
	}()
	go func() {
		defer wg.Done()
		awards, err := s.profiles.ListAwards(ctx, userID)
		if err != nil {
			s.logger.Warn("award fetch failed", zap.Error(err))
			return
		}
		snapshot.Awards = awards
	}()

	wg.Wait()
	return snapshot
}

func (s *counselorService) executorFor(userID uuid.UUID) *CounselorToolExecutor {
	return NewCounselorToolExecutor(&CounselorToolExecutorConfig{
		UserID:      userID,
		Sync:        s.sync,
		Research:    s.research,
		Colleges:    s.colleges,
		Essays:      s.essays,
		Tasks:       s.tasks,
		Profiles:    s.profiles,
		Oracle:      s.oracle,
		Cache:       s.cache,
		ResearchTTL: s.researchTTL,
		Logger:      s.logger,
	})
}

// persistExchange appends the user and assistant turns to the conversation
// log. Best-effort: a failed write is logged, never surfaced.
func (s *counselorService) persistExchange(ctx context.Context, userID uuid.UUID, message string, result *ChatResult, toolResult ...string) {
	userTurn := &models.ConversationTurn{
		UserID:  userID,
		Role:    models.ChatRoleUser,
		Content: message,
	}
	assistantTurn := &models.ConversationTurn{
		UserID:  userID,
		Role:    models.ChatRoleAssistant,
		Content: result.Response,
	}
	if result.FunctionCalled != "" {
		assistantTurn.Metadata = map[string]any{
			"function_called": result.FunctionCalled,
		}
		if len(toolResult) > 0 {
			assistantTurn.Metadata["function_result"] = toolResult[0]
		}
	}

	if err := s.conversations.Append(ctx, userTurn, assistantTurn); err != nil {
		s.logger.Warn("failed to persist conversation", zap.Error(err))
	}
}

// buildHistoryMessages maps client history to oracle messages, dropping
// system-role rows.
func buildHistoryMessages(history []models.HistoryMessage) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, h := range history {
		if h.Role == models.ChatRoleSystem {
			continue
		}
		messages = append(messages, llm.Message{
			Role:    string(h.Role),
			Content: h.Content,
		})
	}
	return messages
}
