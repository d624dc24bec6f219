// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on them.
// No business logic lives here, only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/optigen/optigen/internal/history"
	"github.com/optigen/optigen/internal/prompts"
	"github.com/optigen/optigen/internal/resources"
	"github.com/optigen/optigen/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function closes the history store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if history init failed.
func New() (*server.MCPServer, func(), error) {
	s := server.NewMCPServer(
		"optigen",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Shared dependencies ---

	ws := tools.NewWorkspace()

	// The change journal is an independent subsystem: if it fails to
	// initialize, settings tools continue working and simply skip
	// recording. We log a warning and skip history tool registration.
	cleanup := noop
	hist, histErr := history.New(history.DefaultConfig())
	if histErr != nil {
		log.Printf("WARNING: change journal disabled: %v", histErr)
		hist = nil
	} else {
		cleanup = func() {
			if err := hist.Close(); err != nil {
				log.Printf("WARNING: history store close: %v", err)
			}
		}
	}
	j := tools.NewJournal(hist)

	// --- Register settings tools ---

	readSpec := tools.NewReadSpecTool(ws)
	s.AddTool(readSpec.Definition(), readSpec.Handle)

	metadata := tools.NewMetadataTool(ws, j)
	s.AddTool(metadata.Definition(), metadata.Handle)

	addConstraint := tools.NewAddConstraintTool(ws, j)
	s.AddTool(addConstraint.Definition(), addConstraint.Handle)

	removeConstraint := tools.NewRemoveConstraintTool(ws, j)
	s.AddTool(removeConstraint.Definition(), removeConstraint.Handle)

	updateConstraint := tools.NewUpdateConstraintTool(ws, j)
	s.AddTool(updateConstraint.Definition(), updateConstraint.Handle)

	addScenario := tools.NewAddScenarioTool(ws, j)
	s.AddTool(addScenario.Definition(), addScenario.Handle)

	removeScenario := tools.NewRemoveScenarioTool(ws, j)
	s.AddTool(removeScenario.Definition(), removeScenario.Handle)

	updateRequestSchema := tools.NewUpdateRequestSchemaTool(ws, j)
	s.AddTool(updateRequestSchema.Definition(), updateRequestSchema.Handle)

	updateResponseSchema := tools.NewUpdateResponseSchemaTool(ws, j)
	s.AddTool(updateResponseSchema.Definition(), updateResponseSchema.Handle)

	recordRun := tools.NewRecordRunTool(ws, j)
	s.AddTool(recordRun.Definition(), recordRun.Handle)

	deps := tools.NewDependenciesTool()
	s.AddTool(deps.Definition(), deps.Handle)

	if hist != nil {
		historyTool := tools.NewHistoryTool(hist)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	formulatorPrompt := prompts.NewFormulatorPrompt()
	s.AddPrompt(formulatorPrompt.Definition(), formulatorPrompt.Handle)

	designerPrompt := prompts.NewDatasetDesignerPrompt()
	s.AddPrompt(designerPrompt.Definition(), designerPrompt.Handle)

	coderPrompt := prompts.NewSolverCoderPrompt()
	s.AddPrompt(coderPrompt.Definition(), coderPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler()
	s.AddResource(resourceHandler.SnapshotResource(), resourceHandler.HandleSnapshot)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the journal
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI how
// to build optimization problem specifications with OptiGen.
func serverInstructions() string {
	return `You have access to OptiGen, an expert optimization-model builder.

## Process Steps (STRICT ORDER)

1. **Understand:** Discuss the user's situation/goal to identify the optimization challenge. Record it with update_project_metadata.
2. **Define Model:** Mathematically define objectives and constraints FIRST with add_constraint. Objectives = what to maximize/minimize, added as "soft" constraints with a rank (1 = highest priority). Constraints = strict rules that must be met, type "hard". Do NOT define schemas until this step is complete.
3. **Specify Schemas & Examples:** Only after objectives/constraints are confirmed, define OpenAPI request/response schemas with update_request_schema / update_response_schema, then register sample scenarios with add_scenario.
4. **Generate Solver:** Based on the finalized specification, outline solver structure and record executions with record_solver_run. Check available_solver_dependencies for usable libraries.

**Dependency Rule:** Follow steps in order. If earlier steps change, regenerate all subsequent outputs.

## Interaction Guidelines

- **Be concise:** short, focused responses; bullet points over paragraphs.
- **Start broad:** if the user is unsure, ask about their industry or goal.
- **Clarify ambiguity:** ask one specific question per response, critical information first.
- **Guide, don't assume:** never assume objectives or constraints — confirm before adding them to the model.
- **Quick Start:** if the user wants to move fast, build an initial model from popular assumptions for their problem type (standard VRP, classic job scheduling, typical inventory optimization), state the assumptions, and let them refine afterwards.

Hard constraints are mandatory. Soft constraints (objectives) can be violated but incur a penalty. If objectives conflict, ask the user to clarify priorities.

Formulas must be KaTeX-compatible LaTeX: use \mathrm{} for variable names and braces for multi-character subscripts (x_{ij}, not x_ij).`
}
