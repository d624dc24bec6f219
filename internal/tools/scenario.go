package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// AddScenarioTool handles the add_scenario MCP tool.
type AddScenarioTool struct {
	Journal
	ws *Workspace
}

// NewAddScenarioTool creates an AddScenarioTool with its dependencies.
func NewAddScenarioTool(ws *Workspace, j Journal) *AddScenarioTool {
	return &AddScenarioTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *AddScenarioTool) Definition() mcp.Tool {
	return mcp.NewTool("add_scenario",
		mcp.WithDescription(
			"Add a new scenario to the optimization problem dataset. This "+
				"registers scenario metadata (path, name, description) in the project "+
				"settings; the scenario JSON file itself should already exist.",
		),
		mcp.WithString("request_path",
			mcp.Required(),
			mcp.Description("Path to the JSON file containing the scenario data, relative to the project directory"),
		),
		mcp.WithString("name",
			mcp.Description("Optional name/identifier for the scenario"),
		),
		mcp.WithString("description",
			mcp.Description("Optional human-readable description of the scenario"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the add_scenario tool call.
func (t *AddScenarioTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestPath := req.GetString("request_path", "")
	if requestPath == "" {
		return mcp.NewToolResultError("'request_path' is required"), nil
	}
	name := req.GetString("name", "")

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	sc := snapshot.Scenario{
		Name:        name,
		Description: req.GetString("description", ""),
		Request:     requestPath,
	}
	if err := s.AddScenario(sc); err != nil {
		if errors.Is(err, snapshot.ErrDuplicateEntity) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Error adding scenario: scenario with name '%s' already exists.", name,
			)), nil
		}
		return nil, fmt.Errorf("adding scenario: %w", err)
	}

	scenarioID := "unnamed scenario"
	if name != "" {
		scenarioID = fmt.Sprintf("'%s'", name)
	}
	t.record(s.Dir(), "add", "scenario", name, requestPath)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully added scenario %s with request path '%s'.", scenarioID, requestPath,
	)), nil
}

// RemoveScenarioTool handles the remove_scenario MCP tool.
type RemoveScenarioTool struct {
	Journal
	ws *Workspace
}

// NewRemoveScenarioTool creates a RemoveScenarioTool with its dependencies.
func NewRemoveScenarioTool(ws *Workspace, j Journal) *RemoveScenarioTool {
	return &RemoveScenarioTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveScenarioTool) Definition() mcp.Tool {
	return mcp.NewTool("remove_scenario",
		mcp.WithDescription(
			"Remove an existing scenario from the optimization problem dataset "+
				"by its name. This removes the metadata from project settings; it "+
				"does not delete the scenario's JSON file.",
		),
		mcp.WithString("scenario_name",
			mcp.Required(),
			mcp.Description("The name identifier of the scenario to remove"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the remove_scenario tool call.
func (t *RemoveScenarioTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("scenario_name", "")
	if name == "" {
		return mcp.NewToolResultError("'scenario_name' is required"), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	removed, err := s.RemoveScenario(name)
	if err != nil {
		return nil, fmt.Errorf("removing scenario: %w", err)
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("Scenario '%s' not found.", name)), nil
	}

	t.record(s.Dir(), "remove", "scenario", name, "")
	return mcp.NewToolResultText(fmt.Sprintf("Successfully removed scenario '%s'.", name)), nil
}
