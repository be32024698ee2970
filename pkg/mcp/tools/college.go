// Package tools provides MCP tool implementations for waypoint-engine.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// CollegeToolDeps contains dependencies for college tools.
type CollegeToolDeps struct {
	Sync     services.SyncService
	Research services.ResearchService
	Logger   *zap.Logger
}

// RegisterCollegeTools registers college-related MCP tools.
func RegisterCollegeTools(s *server.MCPServer, deps *CollegeToolDeps) {
	registerAddCollegeTool(s, deps)
	registerResearchCollegeTool(s, deps)
}

// requireUser extracts the authenticated user from the tool call context.
func requireUser(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return uuid.Nil, fmt.Errorf("authentication required")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}

// registerAddCollegeTool adds the add_college tool. It resolves the college
// in the catalog, puts it on the student's list, and materializes its essays
// and starter tasks.
func registerAddCollegeTool(s *server.MCPServer, deps *CollegeToolDeps) {
	tool := mcp.NewTool(
		"add_college",
		mcp.WithDescription(
			"Add a college to the student's application list. "+
				"Creates the required essays and starter tasks for that college. "+
				"Safe to call again for a college already on the list; nothing is duplicated.",
		),
		mcp.WithString(
			"college_name",
			mcp.Required(),
			mcp.Description("Name of the college to add"),
		),
		mcp.WithString(
			"type",
			mcp.Description("List category: Reach, Target, or Safety. Defaults to Target."),
			mcp.Enum("Reach", "Target", "Safety"),
		),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := requireUser(ctx)
		if err != nil {
			return nil, err
		}

		name, err := req.RequireString("college_name")
		if err != nil {
			return NewErrorResult("missing_parameter", "college_name is required"), nil
		}

		collegeType := models.CollegeType(req.GetString("type", string(models.CollegeTypeTarget)))
		if !models.IsValidCollegeType(collegeType) {
			return NewErrorResult("invalid_parameter", "type must be Reach, Target, or Safety"), nil
		}

		result, err := deps.Sync.AddCollegeForUser(ctx, userID, name, collegeType)
		if err != nil {
			deps.Logger.Error("add_college failed",
				zap.String("user_id", userID.String()),
				zap.String("college", name),
				zap.Error(err))
			return nil, fmt.Errorf("failed to add college: %w", err)
		}

		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}

// registerResearchCollegeTool adds the research_college tool for catalog
// lookups. The catalog is shared across students, so no user scope applies.
func registerResearchCollegeTool(s *server.MCPServer, deps *CollegeToolDeps) {
	tool := mcp.NewTool(
		"research_college",
		mcp.WithDescription(
			"Look up admissions data for a college: acceptance rate, test score "+
				"medians, deadlines, application platform, and required essays. "+
				"Researches unknown colleges on demand.",
		),
		mcp.WithString(
			"college_name",
			mcp.Required(),
			mcp.Description("Name of the college to research"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, err := requireUser(ctx); err != nil {
			return nil, err
		}

		name, err := req.RequireString("college_name")
		if err != nil {
			return NewErrorResult("missing_parameter", "college_name is required"), nil
		}

		entry, err := deps.Research.ResolveCollege(ctx, name, false)
		if err != nil {
			deps.Logger.Error("research_college failed",
				zap.String("college", name),
				zap.Error(err))
			return nil, fmt.Errorf("failed to research college: %w", err)
		}

		payload, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal entry: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	})
}
