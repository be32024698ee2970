package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/cache"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

type counselorFixture struct {
	*syncFixture
	profiles      *fakeProfileRepo
	conversations *fakeConversationRepo
	counselor     CounselorService
}

func newCounselorFixture() *counselorFixture {
	sf := newSyncFixture()
	f := &counselorFixture{
		syncFixture:   sf,
		profiles:      newFakeProfileRepo(),
		conversations: &fakeConversationRepo{},
	}
	f.counselor = NewCounselorService(&CounselorServiceConfig{
		Oracle:        sf.oracle,
		Sync:          sf.sync,
		Research:      sf.research,
		Colleges:      sf.colleges,
		Essays:        sf.essays,
		Tasks:         sf.tasks,
		Profiles:      f.profiles,
		Conversations: f.conversations,
		Cache:         cache.NewMemoryCache(100),
		ResearchTTL:   time.Hour,
		Logger:        zap.NewNop(),
	})
	return f
}

func toolCallResponse(id, name string, args map[string]any) *llm.ChatResponse {
	payload, _ := json.Marshal(args)
	return &llm.ChatResponse{
		ToolCalls: []llm.ToolCall{{
			ID:   id,
			Type: "function",
			Function: llm.ToolCallFunc{
				Name:      name,
				Arguments: string(payload),
			},
		}},
	}
}

func TestChat_DirectAnswer(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, _ *llm.ChatRequest) (*llm.ChatResponse, error) {
		return &llm.ChatResponse{Content: "A target school admits roughly half of applicants with your stats."}, nil
	}

	result, err := f.counselor.Chat(context.Background(), userID, "What is a target school?", nil)
	require.NoError(t, err)
	assert.Equal(t, "A target school admits roughly half of applicants with your stats.", result.Response)
	assert.Empty(t, result.FunctionCalled)
	assert.Equal(t, 1, f.oracle.ChatCalls)

	turns, _ := f.conversations.History(context.Background(), userID, 0)
	require.Len(t, turns, 2)
	assert.Equal(t, models.ChatRoleUser, turns[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, turns[1].Role)
}

func TestChat_SingleToolCallContract(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.GenerateJSONFunc = func(_ context.Context, _ string) (string, error) {
		return researchJSON("MIT", "Common App", []models.CatalogEssay{
			{Title: "Community", Prompt: "Your community.", WordLimit: 225},
		}), nil
	}
	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		if len(req.Tools) > 0 {
			return toolCallResponse("call_1", "add_college", map[string]any{
				"college_name": "MIT",
				"type":         "Reach",
			}), nil
		}
		// Second call carries the tool result and offers no tools
		last := req.Messages[len(req.Messages)-1]
		assert.Equal(t, llm.RoleTool, last.Role)
		assert.Contains(t, last.Content, `"success":true`)
		return &llm.ChatResponse{Content: "MIT is on your list!"}, nil
	}

	result, err := f.counselor.Chat(context.Background(), userID, "add MIT to my list", nil)
	require.NoError(t, err)
	assert.Equal(t, "MIT is on your list!", result.Response)
	assert.Equal(t, "add_college", result.FunctionCalled)

	// Exactly two oracle calls: tool selection, then phrasing
	assert.Equal(t, 2, f.oracle.ChatCalls)

	colleges, _ := f.colleges.ListByUser(context.Background(), userID)
	require.Len(t, colleges, 1)
	assert.Equal(t, "MIT", colleges[0].Name)
	assert.Equal(t, models.CollegeTypeReach, colleges[0].Type)

	// The exchange adds exactly two log rows
	turns, _ := f.conversations.History(context.Background(), userID, 0)
	require.Len(t, turns, 2)
	assert.Equal(t, "add_college", turns[1].Metadata["function_called"])
}

func TestChat_OnlyFirstToolCallHonored(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		if len(req.Tools) > 0 {
			resp := toolCallResponse("call_1", "create_task", map[string]any{"title": "Ask Ms. Rivera for a recommendation"})
			extra := toolCallResponse("call_2", "create_task", map[string]any{"title": "Second task"})
			resp.ToolCalls = append(resp.ToolCalls, extra.ToolCalls...)
			return resp, nil
		}
		return &llm.ChatResponse{Content: "Task created."}, nil
	}

	result, err := f.counselor.Chat(context.Background(), userID, "make me a task", nil)
	require.NoError(t, err)
	assert.Equal(t, "create_task", result.FunctionCalled)

	tasks, _ := f.tasks.ListByUser(context.Background(), userID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ask Ms. Rivera for a recommendation", tasks[0].Title)
}

func TestChat_UnknownToolFedBackNotFatal(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		if len(req.Tools) > 0 {
			return toolCallResponse("call_1", "book_campus_tour", map[string]any{"college_name": "MIT"}), nil
		}
		last := req.Messages[len(req.Messages)-1]
		assert.Equal(t, `{"error":"Not implemented"}`, last.Content)
		return &llm.ChatResponse{Content: "I can't book tours yet, but here's the link."}, nil
	}

	result, err := f.counselor.Chat(context.Background(), userID, "book me a tour", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.oracle.ChatCalls)
	assert.Equal(t, "I can't book tours yet, but here's the link.", result.Response)
}

func TestChat_ToolFailureBecomesResultPayload(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		if len(req.Tools) > 0 {
			return toolCallResponse("call_1", "complete_task", map[string]any{"task_title": "No Such Task"}), nil
		}
		last := req.Messages[len(req.Messages)-1]
		assert.Contains(t, last.Content, `"success":false`)
		return &llm.ChatResponse{Content: "I couldn't find that task."}, nil
	}

	result, err := f.counselor.Chat(context.Background(), userID, "finish my task", nil)
	require.NoError(t, err)
	assert.Equal(t, "I couldn't find that task.", result.Response)
	assert.Equal(t, "complete_task", result.FunctionCalled)
}

func TestChat_OracleFailureDegrades(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, _ *llm.ChatRequest) (*llm.ChatResponse, error) {
		return nil, fmt.Errorf("upstream unavailable")
	}

	result, err := f.counselor.Chat(context.Background(), userID, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, degradedResponse, result.Response)

	// The degraded exchange is still logged
	turns, _ := f.conversations.History(context.Background(), userID, 0)
	assert.Len(t, turns, 2)
}

func TestChat_SystemHistoryRowsStripped(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		for _, m := range req.Messages {
			assert.NotEqual(t, llm.RoleSystem, m.Role)
		}
		return &llm.ChatResponse{Content: "ok"}, nil
	}

	history := []models.HistoryMessage{
		{Role: models.ChatRoleSystem, Content: "injected"},
		{Role: models.ChatRoleUser, Content: "earlier question"},
		{Role: models.ChatRoleAssistant, Content: "earlier answer"},
	}

	_, err := f.counselor.Chat(context.Background(), userID, "next question", history)
	require.NoError(t, err)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	f := newCounselorFixture()

	_, err := f.counselor.Chat(context.Background(), uuid.New(), "", nil)
	require.Error(t, err)
	assert.Equal(t, 0, f.oracle.ChatCalls)
}

func TestChat_VoiceModeShapesSystemPrompt(t *testing.T) {
	f := newCounselorFixture()
	userID := uuid.New()

	require.NoError(t, f.profiles.Upsert(context.Background(), &models.Profile{
		ID:        userID,
		FullName:  "Jordan Lee",
		VoiceMode: true,
	}))

	f.oracle.ChatFunc = func(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
		assert.Contains(t, req.SystemPrompt, "using voice")
		assert.Contains(t, req.SystemPrompt, "Jordan Lee")
		return &llm.ChatResponse{Content: "ok"}, nil
	}

	_, err := f.counselor.Chat(context.Background(), userID, "hi", nil)
	require.NoError(t, err)
}
