package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// RecordRunTool handles the record_solver_run MCP tool.
type RecordRunTool struct {
	Journal
	ws *Workspace
}

// NewRecordRunTool creates a RecordRunTool with its dependencies.
func NewRecordRunTool(ws *Workspace, j Journal) *RecordRunTool {
	return &RecordRunTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *RecordRunTool) Definition() mcp.Tool {
	return mcp.NewTool("record_solver_run",
		mcp.WithDescription(
			"Record one solver execution against the project: which solver "+
				"script ran, which input file it consumed and which output file it "+
				"produced. The same script may be recorded many times with "+
				"different input or output files; only the exact triple is unique.",
		),
		mcp.WithString("solver_script_name",
			mcp.Required(),
			mcp.Description("Name of the solver script that was executed"),
		),
		mcp.WithString("input_file",
			mcp.Required(),
			mcp.Description("Path of the input file the solver consumed"),
		),
		mcp.WithString("output_file",
			mcp.Required(),
			mcp.Description("Path of the output file the solver produced"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the record_solver_run tool call.
func (t *RecordRunTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run := snapshot.RunSolverScript{
		SolverScriptName: req.GetString("solver_script_name", ""),
		InputFile:        req.GetString("input_file", ""),
		OutputFile:       req.GetString("output_file", ""),
	}
	if run.SolverScriptName == "" {
		return mcp.NewToolResultError("'solver_script_name' is required"), nil
	}
	if run.InputFile == "" {
		return mcp.NewToolResultError("'input_file' is required"), nil
	}
	if run.OutputFile == "" {
		return mcp.NewToolResultError("'output_file' is required"), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	if err := s.AddRun(run); err != nil {
		if errors.Is(err, snapshot.ErrDuplicateEntity) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Error recording solver run: run '%s' with input '%s' and output '%s' is already recorded.",
				run.SolverScriptName, run.InputFile, run.OutputFile,
			)), nil
		}
		return nil, fmt.Errorf("recording solver run: %w", err)
	}

	t.record(s.Dir(), "add", "run", run.SolverScriptName,
		fmt.Sprintf("%s -> %s", run.InputFile, run.OutputFile))
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully recorded solver run '%s' (%s -> %s).",
		run.SolverScriptName, run.InputFile, run.OutputFile,
	)), nil
}
