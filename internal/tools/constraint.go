package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// AddConstraintTool handles the add_constraint MCP tool.
type AddConstraintTool struct {
	Journal
	ws *Workspace
}

// NewAddConstraintTool creates an AddConstraintTool with its dependencies.
func NewAddConstraintTool(ws *Workspace, j Journal) *AddConstraintTool {
	return &AddConstraintTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *AddConstraintTool) Definition() mcp.Tool {
	return mcp.NewTool("add_constraint",
		mcp.WithDescription(
			"Add a new constraint or objective to the optimization problem. "+
				"Objectives = what to maximize/minimize: add as 'soft' constraints "+
				"with a rank (1 = highest priority). Constraints = strict rules that "+
				"must be met: use type 'hard'. Formulas should be KaTeX-compatible "+
				"LaTeX; use braces for multi-character subscripts (x_{ij}, not x_ij).",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Unique identifier for the constraint (e.g. 'no_overlapping_shifts')"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Human-readable explanation of what the constraint enforces"),
		),
		mcp.WithString("constraint_type",
			mcp.Required(),
			mcp.Description("Either 'hard' (must be satisfied) or 'soft' (objective)"),
			mcp.Enum("hard", "soft"),
		),
		mcp.WithString("formula",
			mcp.Description("Mathematical formula for the constraint, KaTeX-compatible LaTeX"),
		),
		mcp.WithString("where",
			mcp.Description("Condition specifying when/where the constraint applies"),
		),
		mcp.WithNumber("rank",
			mcp.Description("Priority rank for soft constraints: lower = higher priority"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the add_constraint tool call.
func (t *AddConstraintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	description := req.GetString("description", "")
	constraintType := req.GetString("constraint_type", "")

	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	c := snapshot.Constraint{
		Name:        name,
		Description: description,
		Type:        snapshot.ConstraintType(constraintType),
		Formula:     req.GetString("formula", ""),
		Where:       req.GetString("where", ""),
	}
	if rank, ok := optionalInt(req, "rank"); ok {
		c.Rank = &rank
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	if err := s.AddConstraint(c); err != nil {
		if errors.Is(err, snapshot.ErrDuplicateEntity) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Error adding constraint: constraint with name '%s' already exists.", name,
			)), nil
		}
		return nil, fmt.Errorf("adding constraint: %w", err)
	}

	t.record(s.Dir(), "add", "constraint", name, descriptionSummary(description))
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully added constraint '%s' (%s).", name, constraintType,
	)), nil
}

// RemoveConstraintTool handles the remove_constraint MCP tool.
type RemoveConstraintTool struct {
	Journal
	ws *Workspace
}

// NewRemoveConstraintTool creates a RemoveConstraintTool with its dependencies.
func NewRemoveConstraintTool(ws *Workspace, j Journal) *RemoveConstraintTool {
	return &RemoveConstraintTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *RemoveConstraintTool) Definition() mcp.Tool {
	return mcp.NewTool("remove_constraint",
		mcp.WithDescription(
			"Remove an existing constraint from the optimization problem by its name.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The unique identifier of the constraint to remove"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the remove_constraint tool call.
func (t *RemoveConstraintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	removed, err := s.RemoveConstraint(name)
	if err != nil {
		return nil, fmt.Errorf("removing constraint: %w", err)
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("Constraint '%s' not found.", name)), nil
	}

	t.record(s.Dir(), "remove", "constraint", name, "")
	return mcp.NewToolResultText(fmt.Sprintf("Successfully removed constraint '%s'.", name)), nil
}

// UpdateConstraintTool handles the update_constraint MCP tool.
type UpdateConstraintTool struct {
	Journal
	ws *Workspace
}

// NewUpdateConstraintTool creates an UpdateConstraintTool with its dependencies.
func NewUpdateConstraintTool(ws *Workspace, j Journal) *UpdateConstraintTool {
	return &UpdateConstraintTool{Journal: j, ws: ws}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateConstraintTool) Definition() mcp.Tool {
	return mcp.NewTool("update_constraint",
		mcp.WithDescription(
			"Update fields of an existing constraint by its name. Only the "+
				"provided fields change; everything else keeps its current value.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The unique identifier of the constraint to update"),
		),
		mcp.WithString("new_name",
			mcp.Description("New unique identifier for the constraint"),
		),
		mcp.WithString("description",
			mcp.Description("New human-readable explanation"),
		),
		mcp.WithString("constraint_type",
			mcp.Description("New type: 'hard' or 'soft'"),
			mcp.Enum("hard", "soft"),
		),
		mcp.WithString("formula",
			mcp.Description("New formula, KaTeX-compatible LaTeX"),
		),
		mcp.WithString("where",
			mcp.Description("New applicability condition"),
		),
		mcp.WithNumber("rank",
			mcp.Description("New priority rank for soft constraints"),
		),
		mcp.WithString("directory",
			mcp.Description("Project directory. Defaults to the nearest directory containing optigen.json."),
		),
	)
}

// Handle processes the update_constraint tool call.
func (t *UpdateConstraintTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	var u snapshot.ConstraintUpdate
	var changed []string
	if v, ok := optionalString(req, "new_name"); ok {
		u.Name = &v
		changed = append(changed, "name")
	}
	if v, ok := optionalString(req, "description"); ok {
		u.Description = &v
		changed = append(changed, "description")
	}
	if v, ok := optionalString(req, "constraint_type"); ok {
		ct := snapshot.ConstraintType(v)
		u.Type = &ct
		changed = append(changed, "type")
	}
	if v, ok := optionalString(req, "formula"); ok {
		u.Formula = &v
		changed = append(changed, "formula")
	}
	if v, ok := optionalString(req, "where"); ok {
		u.Where = &v
		changed = append(changed, "where")
	}
	if v, ok := optionalInt(req, "rank"); ok {
		u.Rank = &v
		changed = append(changed, "rank")
	}

	if len(changed) == 0 {
		return mcp.NewToolResultText("No updates provided."), nil
	}

	s, err := t.ws.Settings(req.GetString("directory", ""))
	if err != nil {
		return mcp.NewToolResultError(notInitialized(err)), nil
	}

	found, err := s.UpdateConstraint(name, u)
	if err != nil {
		if errors.Is(err, snapshot.ErrDuplicateEntity) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Error updating constraint: %v.", err,
			)), nil
		}
		return nil, fmt.Errorf("updating constraint: %w", err)
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("Constraint '%s' not found.", name)), nil
	}

	t.record(s.Dir(), "update", "constraint", name, strings.Join(changed, ", "))
	return mcp.NewToolResultText(fmt.Sprintf(
		"Successfully updated constraint '%s' (%s).", name, strings.Join(changed, ", "),
	)), nil
}
