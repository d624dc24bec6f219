package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// solverDependencies lists the libraries available to generated solver
// scripts in the execution environment.
var solverDependencies = []string{"pyomo"}

// DependenciesTool handles the available_solver_dependencies MCP tool.
type DependenciesTool struct{}

// NewDependenciesTool creates a DependenciesTool.
func NewDependenciesTool() *DependenciesTool {
	return &DependenciesTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DependenciesTool) Definition() mcp.Tool {
	return mcp.NewTool("available_solver_dependencies",
		mcp.WithDescription(
			"Return the list of dependencies available for use in solver scripts.",
		),
	)
}

// Handle processes the available_solver_dependencies tool call.
func (t *DependenciesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(solverDependencies, ", ")), nil
}
