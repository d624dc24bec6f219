package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReadSpecTool handles the read_problem_specification MCP tool.
// It serializes the complete project snapshot for the agent.
type ReadSpecTool struct {
	ws *Workspace
}

// NewReadSpecTool creates a ReadSpecTool bound to the workspace.
func NewReadSpecTool(ws *Workspace) *ReadSpecTool {
	return &ReadSpecTool{ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadSpecTool) Definition() mcp.Tool {
	return mcp.NewTool("read_problem_specification",
		mcp.WithDescription(
			"Read the complete problem specification from the project settings. "+
				"Returns the project snapshot JSON containing title, description, "+
				"constraints, schemas, scenario dataset and solver runs.",
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the read_problem_specification tool call.
func (t *ReadSpecTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("directory", "")
	if dir == "" {
		root, err := findProjectRoot()
		if err != nil {
			// No settings bound yet; an empty specification, not a failure.
			return mcp.NewToolResultText("{}"), nil
		}
		dir = root
	}

	s, err := t.ws.Settings(dir)
	if err != nil {
		// Corrupt file or a read failure on an existing optigen.json.
		// Never masked as an empty specification.
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	text, err := s.JSON()
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(text), nil
}
