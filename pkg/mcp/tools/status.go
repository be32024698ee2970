package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/repositories"
)

// StatusToolDeps contains dependencies for the application status tool.
type StatusToolDeps struct {
	Colleges repositories.CollegeRepository
	Tasks    repositories.TaskRepository
	Essays   repositories.EssayRepository
	Logger   *zap.Logger
}

// RegisterStatusTool adds the get_application_status tool. It returns the
// student's full application state: colleges, tasks, and essays.
func RegisterStatusTool(s *server.MCPServer, deps *StatusToolDeps) {
	tool := mcp.NewTool(
		"get_application_status",
		mcp.WithDescription(
			"Get the student's complete application status: colleges on the "+
				"list with type and progress, all tasks, and all essays with "+
				"word counts and completion state.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		colleges, err := deps.Colleges.ListByUser(ctx, userID)
		if err != nil {
			deps.Logger.Error("get_application_status failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("failed to list colleges: %w", err)
		}
		tasks, err := deps.Tasks.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		essays, err := deps.Essays.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list essays: %w", err)
		}

		payload, err := json.Marshal(map[string]any{
			"colleges": colleges,
			"tasks":    tasks,
			"essays":   essays,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal status: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}
