package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateRequestSchemaTool handles the update_request_schema MCP tool.
type UpdateRequestSchemaTool struct {
	Journal
	ws *Workspace
}

// NewUpdateRequestSchemaTool creates an UpdateRequestSchemaTool with its dependencies.
func NewUpdateRequestSchemaTool(ws *Workspace, j Journal) *UpdateRequestSchemaTool {
	return &UpdateRequestSchemaTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateRequestSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("update_request_schema",
		mcp.WithDescription(
			"Update the problem request schema (input format). The request "+
				"schema defines the structure of input data users provide when "+
				"submitting optimization problems. Set schemas only after objectives "+
				"and constraints are confirmed. The response schema keeps its "+
				"current value.",
		),
		mcp.WithObject("schema",
			mcp.Required(),
			mcp.Description("JSON schema object defining the expected input format (OpenAPI format)"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the update_request_schema tool call.
func (t *UpdateRequestSchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema, ok := req.GetArguments()["schema"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("'schema' is required and must be an object"), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	if err := s.UpdateRequestSchema(schema); err != nil {
		return nil, fmt.Errorf("updating request schema: %w", err)
	}

	pretty, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	t.record(s.Dir(), "update", "request_schema", "", "")
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully updated request schema: %s", pretty,
	)), nil
}

// UpdateResponseSchemaTool handles the update_response_schema MCP tool.
type UpdateResponseSchemaTool struct {
	Journal
	ws *Workspace
}

// NewUpdateResponseSchemaTool creates an UpdateResponseSchemaTool with its dependencies.
func NewUpdateResponseSchemaTool(ws *Workspace, j Journal) *UpdateResponseSchemaTool {
	return &UpdateResponseSchemaTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateResponseSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("update_response_schema",
		mcp.WithDescription(
			"Update the problem response schema (output format). The response "+
				"schema defines the structure of optimization results returned to "+
				"users after solving. Set schemas only after objectives and "+
				"constraints are confirmed. The request schema keeps its current "+
				"value.",
		),
		mcp.WithObject("schema",
			mcp.Required(),
			mcp.Description("JSON schema object defining the expected output format (OpenAPI format)"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the update_response_schema tool call.
func (t *UpdateResponseSchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schema, ok := req.GetArguments()["schema"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("'schema' is required and must be an object"), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	if err := s.UpdateResponseSchema(schema); err != nil {
		return nil, fmt.Errorf("updating response schema: %w", err)
	}

	pretty, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	t.record(s.Dir(), "update", "response_schema", "", "")
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully updated response schema: %s", pretty,
	)), nil
}
