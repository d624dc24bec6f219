package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/history"
)

// HistoryTool handles the optigen_history MCP tool. It is registered only
// when the change journal is available.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool backed by the journal store.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("optigen_history",
		mcp.WithDescription(
			"List the most recent changes made to a project's settings: "+
				"constraints added or removed, schemas updated, scenarios and "+
				"solver runs recorded. Newest first.",
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return"),
		),
	)
}

// Handle processes the optigen_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("directory", "")
	if dir == "" {
		root, err := findProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}

	limit, _ := optionalInt(req, "limit")
	entries, err := t.store.Recent(abs, limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No recorded changes for project at %s.", abs,
		)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent changes for %s:\n", abs)
	for _, e := range entries {
		fmt.Fprintf(&b, "- [%s] %s %s", e.CreatedAt, e.Operation, e.Entity)
		if e.Key != "" {
			fmt.Fprintf(&b, " '%s'", e.Key)
		}
		if e.Detail != "" {
			fmt.Fprintf(&b, " (%s)", e.Detail)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
