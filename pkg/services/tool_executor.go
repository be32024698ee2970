package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/cache"
	"github.com/waypoint-hq/waypoint-engine/pkg/jsonutil"
	"github.com/waypoint-hq/waypoint-engine/pkg/llm"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/prompts"
	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// CounselorToolExecutor dispatches counselor tool calls for one student.
// Handler failures are converted to {"success":false,...} payloads and fed
// back to the oracle; an unknown tool name is a no-op result, never an
// aborted turn. Only malformed argument JSON is a hard error.
type CounselorToolExecutor struct {
	userID      uuid.UUID
	sync        SyncService
	research    ResearchService
	colleges    repositories.CollegeRepository
	essays      repositories.EssayRepository
	tasks       repositories.TaskRepository
	profiles    repositories.ProfileRepository
	oracle      llm.ChatClient
	cache       cache.Cache
	researchTTL time.Duration
	logger      *zap.Logger
}

// CounselorToolExecutorConfig holds dependencies for creating a tool executor.
type CounselorToolExecutorConfig struct {
	UserID      uuid.UUID
	Sync        SyncService
	Research    ResearchService
	Colleges    repositories.CollegeRepository
	Essays      repositories.EssayRepository
	Tasks       repositories.TaskRepository
	Profiles    repositories.ProfileRepository
	Oracle      llm.ChatClient
	Cache       cache.Cache
	ResearchTTL time.Duration
	Logger      *zap.Logger
}

// NewCounselorToolExecutor creates a tool executor scoped to one student.
func NewCounselorToolExecutor(cfg *CounselorToolExecutorConfig) *CounselorToolExecutor {
	ttl := cfg.ResearchTTL
	if ttl == 0 {
		ttl = 4 * time.Hour
	}
	return &CounselorToolExecutor{
		userID:      cfg.UserID,
		sync:        cfg.Sync,
		research:    cfg.Research,
		colleges:    cfg.Colleges,
		essays:      cfg.Essays,
		tasks:       cfg.Tasks,
		profiles:    cfg.Profiles,
		oracle:      cfg.Oracle,
		cache:       cfg.Cache,
		researchTTL: ttl,
		logger:      cfg.Logger.Named("tool-executor"),
	}
}

var _ llm.ToolExecutor = (*CounselorToolExecutor)(nil)

// ExecuteTool dispatches to the appropriate tool handler based on name.
func (e *CounselorToolExecutor) ExecuteTool(ctx context.Context, name string, arguments string) (string, error) {
	e.logger.Debug("executing tool",
		zap.String("tool", name),
		zap.String("arguments", arguments))

	var result string
	var err error

	switch name {
	case "research_college":
		result, err = e.researchCollege(ctx, arguments)
	case "add_college":
		result, err = e.addCollege(ctx, arguments)
	case "update_college_status":
		result, err = e.updateCollegeStatus(ctx, arguments)
	case "create_task":
		result, err = e.createTask(ctx, arguments)
	case "update_task":
		result, err = e.updateTask(ctx, arguments)
	case "complete_task":
		result, err = e.completeTask(ctx, arguments)
	case "delete_task":
		result, err = e.deleteTask(ctx, arguments)
	case "update_profile":
		result, err = e.updateProfile(ctx, arguments)
	case "update_essay_content":
		result, err = e.updateEssayContent(ctx, arguments)
	case "get_essay":
		result, err = e.getEssay(ctx, arguments)
	case "get_application_status":
		result, err = e.getApplicationStatus(ctx)
	case "list_documents":
		result, err = e.listDocuments(ctx)
	case "brainstorm_essay":
		result, err = e.brainstormEssay(ctx, arguments)
	case "review_essay":
		result, err = e.reviewEssay(ctx, arguments)
	case "live_research":
		result, err = e.liveResearch(ctx, arguments)
	default:
		e.logger.Warn("unknown tool requested", zap.String("tool", name))
		return `{"error":"Not implemented"}`, nil
	}

	if err != nil {
		var badArgs *badArgumentsError
		if errors.As(err, &badArgs) {
			return "", err
		}
		e.logger.Warn("tool failed",
			zap.String("tool", name),
			zap.Error(err))
		return toolFailure(err), nil
	}

	return result, nil
}

// badArgumentsError marks argument JSON that could not be parsed. It is the
// only tool failure that propagates as an error.
type badArgumentsError struct {
	err error
}

func (e *badArgumentsError) Error() string { return "invalid tool arguments: " + e.err.Error() }
func (e *badArgumentsError) Unwrap() error { return e.err }

func parseArgs[T any](arguments string) (T, error) {
	var args T
	if arguments == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return args, &badArgumentsError{err: err}
	}
	return args, nil
}

func toolFailure(err error) string {
	payload, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   err.Error(),
	})
	return string(payload)
}

func toolSuccess(fields map[string]any) string {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["success"] = true
	payload, _ := json.Marshal(fields)
	return string(payload)
}

// ============================================================================
// Tool: research_college
// ============================================================================

type researchCollegeArgs struct {
	CollegeName string `json:"college_name"`
}

func (e *CounselorToolExecutor) researchCollege(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[researchCollegeArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.CollegeName == "" {
		return "", fmt.Errorf("college_name is required")
	}

	key := cache.ResearchKey(args.CollegeName)
	if cached, ok := e.cache.Get(ctx, key); ok {
		return cached, nil
	}

	entry, err := e.research.ResolveCollege(ctx, args.CollegeName, false)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to serialize catalog entry: %w", err)
	}

	e.cache.Set(ctx, key, string(payload), e.researchTTL)
	return string(payload), nil
}

// ============================================================================
// Tool: add_college
// ============================================================================

type addCollegeArgs struct {
	CollegeName string `json:"college_name"`
	Type        string `json:"type"`
}

func (e *CounselorToolExecutor) addCollege(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[addCollegeArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.CollegeName == "" {
		return "", fmt.Errorf("college_name is required")
	}

	collegeType := models.CollegeType(args.Type)
	if args.Type != "" && !models.IsValidCollegeType(collegeType) {
		return "", fmt.Errorf("invalid college type %q", args.Type)
	}

	result, err := e.sync.AddCollegeForUser(ctx, e.userID, args.CollegeName, collegeType)
	if err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{
		"college_id":      result.CollegeID,
		"college_name":    result.CollegeName,
		"already_on_list": result.AlreadyOnList,
		"records_created": result.RecordsCreated,
	}), nil
}

// ============================================================================
// Tool: update_college_status
// ============================================================================

type updateCollegeStatusArgs struct {
	CollegeName string `json:"college_name"`
	Status      string `json:"status"`
}

func (e *CounselorToolExecutor) updateCollegeStatus(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[updateCollegeStatusArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.CollegeName == "" || args.Status == "" {
		return "", fmt.Errorf("college_name and status are required")
	}

	status := models.CollegeStatus(args.Status)
	if !models.IsValidCollegeStatus(status) {
		return "", fmt.Errorf("invalid status %q", args.Status)
	}

	college, err := e.sync.FindUserCollege(ctx, e.userID, args.CollegeName)
	if err != nil {
		return "", fmt.Errorf("college %q not found on your list", args.CollegeName)
	}

	if err := e.colleges.UpdateStatus(ctx, e.userID, college.Name, status); err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{
		"college_name": college.Name,
		"status":       status,
	}), nil
}

// ============================================================================
// Tool: create_task
// ============================================================================

type createTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	CollegeName string `json:"college_name"`
}

func (e *CounselorToolExecutor) createTask(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[createTaskArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.Title == "" {
		return "", fmt.Errorf("title is required")
	}

	priority := models.TaskPriority(args.Priority)
	if args.Priority != "" && !models.IsValidTaskPriority(priority) {
		return "", fmt.Errorf("invalid priority %q", args.Priority)
	}

	task := &models.Task{
		UserID:      e.userID,
		Title:       args.Title,
		Description: args.Description,
		Priority:    priority,
		Category:    args.Category,
	}

	if args.CollegeName != "" {
		college, err := e.sync.FindUserCollege(ctx, e.userID, args.CollegeName)
		if err != nil {
			return "", fmt.Errorf("college %q not found on your list", args.CollegeName)
		}
		task.CollegeID = &college.ID
	}

	if err := e.tasks.Create(ctx, task); err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{
		"task_id": task.ID,
		"title":   task.Title,
	}), nil
}

// ============================================================================
// Tool: update_task
// ============================================================================

type updateTaskArgs struct {
	TaskTitle   string `json:"task_title"`
	NewTitle    string `json:"new_title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (e *CounselorToolExecutor) updateTask(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[updateTaskArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.TaskTitle == "" {
		return "", fmt.Errorf("task_title is required")
	}

	task, err := e.tasks.GetByTitle(ctx, e.userID, args.TaskTitle)
	if err != nil {
		return "", fmt.Errorf("task %q not found", args.TaskTitle)
	}

	if args.NewTitle != "" {
		task.Title = args.NewTitle
	}
	if args.Description != "" {
		task.Description = args.Description
	}
	if args.Priority != "" {
		priority := models.TaskPriority(args.Priority)
		if !models.IsValidTaskPriority(priority) {
			return "", fmt.Errorf("invalid priority %q", args.Priority)
		}
		task.Priority = priority
	}

	if err := e.tasks.Update(ctx, task); err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{
		"task_id": task.ID,
		"title":   task.Title,
	}), nil
}

// ============================================================================
// Tool: complete_task / delete_task
// ============================================================================

type taskTitleArgs struct {
	TaskTitle string `json:"task_title"`
}

func (e *CounselorToolExecutor) completeTask(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[taskTitleArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.TaskTitle == "" {
		return "", fmt.Errorf("task_title is required")
	}

	if err := e.tasks.Complete(ctx, e.userID, args.TaskTitle); err != nil {
		return "", fmt.Errorf("task %q not found", args.TaskTitle)
	}

	return toolSuccess(map[string]any{"title": args.TaskTitle}), nil
}

func (e *CounselorToolExecutor) deleteTask(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[taskTitleArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.TaskTitle == "" {
		return "", fmt.Errorf("task_title is required")
	}

	if err := e.tasks.Delete(ctx, e.userID, args.TaskTitle); err != nil {
		return "", fmt.Errorf("task %q not found", args.TaskTitle)
	}

	return toolSuccess(map[string]any{"title": args.TaskTitle}), nil
}

// ============================================================================
// Tool: update_profile
// ============================================================================

type updateProfileArgs struct {
	Field string `json:"field"`
	// Value rides as a raw message because the oracle sometimes sends
	// numbers bare instead of quoted.
	Value json.RawMessage `json:"value"`
}

func (e *CounselorToolExecutor) updateProfile(ctx context.Context, arguments string) (string, error) {
	rawArgs, err := parseArgs[updateProfileArgs](arguments)
	if err != nil {
		return "", err
	}
	args := struct {
		Field string
		Value string
	}{
		Field: rawArgs.Field,
		Value: jsonutil.FlexibleStringValue(rawArgs.Value),
	}
	if args.Field == "" || args.Value == "" {
		return "", fmt.Errorf("field and value are required")
	}

	profile, err := e.profiles.Get(ctx, e.userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}
		profile = &models.Profile{ID: e.userID}
	}

	switch args.Field {
	case "full_name":
		profile.FullName = args.Value
	case "intended_major":
		profile.IntendedMajor = args.Value
	case "graduation_year":
		year, err := strconv.Atoi(args.Value)
		if err != nil {
			return "", fmt.Errorf("graduation_year must be a number")
		}
		profile.GraduationYear = &year
	case "unweighted_gpa":
		gpa, err := strconv.ParseFloat(args.Value, 64)
		if err != nil {
			return "", fmt.Errorf("unweighted_gpa must be a number")
		}
		profile.UnweightedGPA = &gpa
	case "sat_score":
		score, err := strconv.Atoi(args.Value)
		if err != nil {
			return "", fmt.Errorf("sat_score must be a number")
		}
		profile.SATScore = &score
	case "act_score":
		score, err := strconv.Atoi(args.Value)
		if err != nil {
			return "", fmt.Errorf("act_score must be a number")
		}
		profile.ACTScore = &score
	default:
		return "", fmt.Errorf("unknown profile field %q", args.Field)
	}

	if err := e.profiles.Upsert(ctx, profile); err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{
		"field": args.Field,
		"value": args.Value,
	}), nil
}

// ============================================================================
// Tool: update_essay_content / get_essay
// ============================================================================

type updateEssayContentArgs struct {
	EssayTitle string `json:"essay_title"`
	Content    string `json:"content"`
}

func (e *CounselorToolExecutor) updateEssayContent(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[updateEssayContentArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.EssayTitle == "" {
		return "", fmt.Errorf("essay_title is required")
	}

	wordCount := len(strings.Fields(args.Content))
	if err := e.essays.UpdateContent(ctx, e.userID, args.EssayTitle, args.Content, wordCount); err != nil {
		return "", fmt.Errorf("essay %q not found", args.EssayTitle)
	}

	return toolSuccess(map[string]any{
		"title":      args.EssayTitle,
		"word_count": wordCount,
	}), nil
}

type getEssayArgs struct {
	EssayTitle string `json:"essay_title"`
}

func (e *CounselorToolExecutor) getEssay(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[getEssayArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.EssayTitle == "" {
		return "", fmt.Errorf("essay_title is required")
	}

	essay, err := e.essays.GetByTitle(ctx, e.userID, args.EssayTitle)
	if err != nil {
		return "", fmt.Errorf("essay %q not found", args.EssayTitle)
	}

	payload, err := json.Marshal(essay)
	if err != nil {
		return "", fmt.Errorf("failed to serialize essay: %w", err)
	}
	return string(payload), nil
}

// ============================================================================
// Tool: get_application_status / list_documents
// ============================================================================

func (e *CounselorToolExecutor) getApplicationStatus(ctx context.Context) (string, error) {
	colleges, err := e.colleges.ListByUser(ctx, e.userID)
	if err != nil {
		return "", err
	}
	tasks, err := e.tasks.ListByUser(ctx, e.userID)
	if err != nil {
		return "", err
	}
	essays, err := e.essays.ListByUser(ctx, e.userID)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]any{
		"colleges": colleges,
		"tasks":    tasks,
		"essays":   essays,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize status: %w", err)
	}
	return string(payload), nil
}

func (e *CounselorToolExecutor) listDocuments(ctx context.Context) (string, error) {
	essays, err := e.essays.ListByUser(ctx, e.userID)
	if err != nil {
		return "", err
	}

	type document struct {
		Title     string           `json:"title"`
		EssayType models.EssayType `json:"essay_type"`
		WordCount int              `json:"word_count"`
		WordLimit int              `json:"word_limit"`
		Completed bool             `json:"completed"`
	}

	documents := make([]document, len(essays))
	for i, essay := range essays {
		documents[i] = document{
			Title:     essay.Title,
			EssayType: essay.EssayType,
			WordCount: essay.WordCount,
			WordLimit: essay.WordLimit,
			Completed: essay.IsCompleted,
		}
	}

	payload, err := json.Marshal(map[string]any{"documents": documents})
	if err != nil {
		return "", fmt.Errorf("failed to serialize documents: %w", err)
	}
	return string(payload), nil
}

// ============================================================================
// Tool: brainstorm_essay / review_essay / live_research
// ============================================================================

type brainstormEssayArgs struct {
	Topic       string `json:"topic"`
	EssayPrompt string `json:"essay_prompt"`
}

func (e *CounselorToolExecutor) brainstormEssay(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[brainstormEssayArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.Topic == "" {
		return "", fmt.Errorf("topic is required")
	}

	systemPrompt, userPrompt := prompts.BuildBrainstormPrompt(args.Topic, args.EssayPrompt)
	ideas, err := e.oracle.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{"ideas": ideas}), nil
}

type reviewEssayArgs struct {
	EssayText string `json:"essay_text"`
}

func (e *CounselorToolExecutor) reviewEssay(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[reviewEssayArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.EssayText == "" {
		return "", fmt.Errorf("essay_text is required")
	}

	systemPrompt, userPrompt := prompts.BuildEssayReviewPrompt(args.EssayText)
	feedback, err := e.oracle.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	return toolSuccess(map[string]any{"feedback": feedback}), nil
}

type liveResearchArgs struct {
	Query string `json:"query"`
}

func (e *CounselorToolExecutor) liveResearch(ctx context.Context, arguments string) (string, error) {
	args, err := parseArgs[liveResearchArgs](arguments)
	if err != nil {
		return "", err
	}
	if args.Query == "" {
		return "", fmt.Errorf("query is required")
	}

	key := cache.TopicResearchKey(args.Query)
	if cached, ok := e.cache.Get(ctx, key); ok {
		return cached, nil
	}

	systemPrompt, userPrompt := prompts.BuildTopicResearchPrompt(args.Query)
	answer, err := e.oracle.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	result := toolSuccess(map[string]any{"answer": answer})
	e.cache.Set(ctx, key, result, e.researchTTL)
	return result, nil
}
