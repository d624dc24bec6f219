package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// MetadataTool handles the update_project_metadata MCP tool.
type MetadataTool struct {
	Journal
	ws *Workspace
}

// NewMetadataTool creates a MetadataTool with its dependencies.
func NewMetadataTool(ws *Workspace, j Journal) *MetadataTool {
	return &MetadataTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *MetadataTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project_metadata",
		mcp.WithDescription(
			"Update the project title and/or description. Use this to set or "+
				"modify the high-level metadata about the optimization problem "+
				"being solved.",
		),
		mcp.WithString("title",
			mcp.Description("New title for the project"),
		),
		mcp.WithString("description",
			mcp.Description("New description for the project"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the update_project_metadata tool call.
func (t *MetadataTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	description := req.GetString("description", "")

	if title == "" && description == "" {
		return mcp.NewToolResultText("No updates provided."), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	var u snapshot.SnapshotUpdate
	var updates []string
	if title != "" {
		u.Title = &title
		updates = append(updates, fmt.Sprintf("title='%s'", title))
	}
	if description != "" {
		u.Description = &description
		updates = append(updates, fmt.Sprintf("description='%s'", description))
	}

	if err := s.Update(u); err != nil {
		return nil, fmt.Errorf("updating project metadata: %w", err)
	}

	t.record(s.Dir(), "update", "metadata", "", strings.Join(updates, ", "))
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully updated project metadata: %s.", strings.Join(updates, ", "),
	)), nil
}
