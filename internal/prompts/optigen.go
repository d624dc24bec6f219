// Package prompts implements MCP prompt handlers for OptiGen.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which the
// AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the optigen-start MCP prompt. It kicks off the
// problem-specification workflow for a new or existing project.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("optigen-start",
		mcp.WithPromptDescription(
			"Start building an optimization problem specification. Guides the "+
				"conversation from a vague goal to confirmed objectives, "+
				"constraints, schemas and example scenarios.",
		),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What you want to optimize, in your own words"),
		),
		mcp.WithArgument("quick_start",
			mcp.ArgumentDescription("Set to 'yes' to build an initial model from popular assumptions for your problem type"),
		),
	)
}

// Handle processes the optigen-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := "an optimization problem I will describe"
	quickStart := false
	if args := req.Params.Arguments; args != nil {
		if g, ok := args["goal"]; ok && g != "" {
			goal = g
		}
		if q, ok := args["quick_start"]; ok && q == "yes" {
			quickStart = true
		}
	}

	modeNote := "Confirm objectives and constraints with me before adding them to the model."
	if quickStart {
		modeNote = "Quick Start mode: proceed with popular assumptions for my problem type, " +
			"summarize what you assumed, and let me refine afterwards."
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build optimization specification: %s", goal),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to build an optimization model for %s.\n\n"+
						"Please follow the OptiGen process in strict order:\n"+
						"1. Discuss my situation to identify the optimization challenge, then set the project title and description with `update_project_metadata`\n"+
						"2. Define objectives and constraints with `add_constraint` — objectives as 'soft' constraints with a rank, strict rules as 'hard'\n"+
						"3. Only after objectives/constraints are confirmed, define request/response schemas with `update_request_schema` and `update_response_schema`, then register example scenarios with `add_scenario`\n"+
						"4. Outline the solver implementation and record executions with `record_solver_run`\n\n"+
						"%s",
					goal, modeNote,
				)),
			},
		},
	}, nil
}

// FormulatorPrompt handles the optigen-formulate MCP prompt: the
// problem-formulator role focused on objectives and constraints only.
type FormulatorPrompt struct{}

// NewFormulatorPrompt creates a FormulatorPrompt.
func NewFormulatorPrompt() *FormulatorPrompt {
	return &FormulatorPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *FormulatorPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("optigen-formulate",
		mcp.WithPromptDescription(
			"Clarify and structure the optimization problem: title, description, "+
				"objectives and constraints. No schemas or datasets in this step.",
		),
	)
}

// Handle processes the optigen-formulate prompt request.
func (p *FormulatorPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Formulate the optimization problem",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Act as the Problem Formulator. Focus only on high-level problem " +
						"understanding, the project title and description, and on proposing, " +
						"refining and organizing objectives and constraints. Use " +
						"`update_project_metadata` and `add_constraint`/`update_constraint`/" +
						"`remove_constraint`. Ask one specific question per response, " +
						"prioritizing critical information first. Do not define schemas or " +
						"datasets yet.",
				),
			},
		},
	}, nil
}

// SolverCoderPrompt handles the optigen-write-solver MCP prompt: the
// solver-coder role focused on implementation strategy and run recording.
type SolverCoderPrompt struct{}

// NewSolverCoderPrompt creates a SolverCoderPrompt.
func NewSolverCoderPrompt() *SolverCoderPrompt {
	return &SolverCoderPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SolverCoderPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("optigen-write-solver",
		mcp.WithPromptDescription(
			"Propose and refine solver implementation strategies for the "+
				"finalized specification, and record executions.",
		),
	)
}

// Handle processes the optigen-write-solver prompt request.
func (p *SolverCoderPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Implement and run the solver",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Act as the Solver Coder. Read the finalized specification with " +
						"`read_problem_specification`, check `available_solver_dependencies`, " +
						"and choose appropriate optimization libraries and modeling patterns. " +
						"Put each solver script in its own directory under `scripts` (for " +
						"example `scripts/ortools_1`), add a Dockerfile at the project root " +
						"with the dependencies and the run command, and record every " +
						"execution with `record_solver_run`. Do not write documentation files.",
				),
			},
		},
	}, nil
}

// DatasetDesignerPrompt handles the optigen-design-dataset MCP prompt: the
// schema & dataset designer role.
type DatasetDesignerPrompt struct{}

// NewDatasetDesignerPrompt creates a DatasetDesignerPrompt.
func NewDatasetDesignerPrompt() *DatasetDesignerPrompt {
	return &DatasetDesignerPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DatasetDesignerPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("optigen-design-dataset",
		mcp.WithPromptDescription(
			"Translate confirmed objectives and constraints into request/response "+
				"JSON schemas and register example scenarios in the dataset.",
		),
	)
}

// Handle processes the optigen-design-dataset prompt request.
func (p *DatasetDesignerPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Design schemas and example scenarios",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Act as the Schema & Dataset Designer. Read the current " +
						"specification with `read_problem_specification`, translate the " +
						"finalized objectives and constraints into concrete request/response " +
						"JSON schemas via `update_request_schema` and `update_response_schema`, " +
						"then design example scenarios and register them with `add_scenario`. " +
						"Put scenario files in the `scenarios` directory unless I ask for a " +
						"different location.",
				),
			},
		},
	}, nil
}
