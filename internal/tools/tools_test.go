package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// --- Helpers ---

// callReq builds a CallToolRequest with the given arguments.
func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if a CallToolResult is an error result.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// noJournal is a disabled journal for tests that don't exercise history.
func noJournal() Journal {
	return NewJournal(nil)
}

func addConstraint(t *testing.T, ws *Workspace, dir, name string) {
	t.Helper()
	tool := NewAddConstraintTool(ws, noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"name":            name,
		"description":     "a rule",
		"constraint_type": "hard",
		"directory":       dir,
	}))
	if err != nil {
		t.Fatalf("add_constraint Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("add_constraint errored: %s", getResultText(result))
	}
}

// --- read_problem_specification ---

func TestReadSpec_FreshDirectory(t *testing.T) {
	ws := NewWorkspace()
	tool := NewReadSpecTool(ws)

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"directory": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(getResultText(result)), &doc); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if doc["optigen_snapshot_version"] != snapshot.SnapshotVersionTag {
		t.Errorf("snapshot version = %v, want %q", doc["optigen_snapshot_version"], snapshot.SnapshotVersionTag)
	}
}

func TestReadSpec_ReflectsMutations(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	addConstraint(t, ws, dir, "no_overlap")

	result, err := NewReadSpecTool(ws).Handle(context.Background(), callReq(map[string]any{
		"directory": dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "no_overlap") {
		t.Error("specification does not include the added constraint")
	}
}

func TestReadSpec_ReadFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of optigen.json makes the read fail outright.
	if err := os.Mkdir(filepath.Join(dir, snapshot.SettingsFile), 0o755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	result, err := NewReadSpecTool(NewWorkspace()).Handle(context.Background(), callReq(map[string]any{
		"directory": dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("read failure reported as a success result")
	}
	if getResultText(result) == "{}" {
		t.Error("read failure masked as an empty specification")
	}
}

func TestReadSpec_CorruptFileIsReported(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, snapshot.SettingsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	result, err := NewReadSpecTool(NewWorkspace()).Handle(context.Background(), callReq(map[string]any{
		"directory": dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("corrupt settings file reported as a success result")
	}
	if !strings.Contains(getResultText(result), "corrupt") {
		t.Errorf("unexpected message: %s", getResultText(result))
	}
}

// --- update_project_metadata ---

func TestMetadata_UpdateBoth(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	tool := NewMetadataTool(ws, noJournal())

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"title":       "Fleet Routing",
		"description": "Route a delivery fleet",
		"directory":   dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "title='Fleet Routing'") || !strings.Contains(text, "description='Route a delivery fleet'") {
		t.Errorf("unexpected confirmation: %s", text)
	}

	// A fresh engine against the same directory sees the committed title.
	s, err := snapshot.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Title() == nil || *s.Title() != "Fleet Routing" {
		t.Errorf("persisted title = %v, want 'Fleet Routing'", s.Title())
	}
}

func TestMetadata_NoUpdates(t *testing.T) {
	tool := NewMetadataTool(NewWorkspace(), noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"directory": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if getResultText(result) != "No updates provided." {
		t.Errorf("result = %q, want 'No updates provided.'", getResultText(result))
	}
}

// --- add_constraint / remove_constraint / update_constraint ---

func TestAddConstraintTool_RequiredArgs(t *testing.T) {
	tool := NewAddConstraintTool(NewWorkspace(), noJournal())

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"description":     "missing name",
		"constraint_type": "hard",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when name is missing")
	}
}

func TestAddConstraintTool_DuplicateMessage(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	addConstraint(t, ws, dir, "no_overlap")

	tool := NewAddConstraintTool(ws, noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"name":            "no_overlap",
		"description":     "again",
		"constraint_type": "soft",
		"rank":            float64(1),
		"directory":       dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("duplicate add should produce an error result")
	}
	if !strings.Contains(getResultText(result), "already exists") {
		t.Errorf("unexpected message: %s", getResultText(result))
	}
}

func TestAddConstraintTool_SoftWithRank(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	tool := NewAddConstraintTool(ws, noJournal())

	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"name":            "minimize_cost",
		"description":     "total cost of all routes",
		"constraint_type": "soft",
		"rank":            float64(1),
		"formula":         `\min \sum_{ij} c_{ij} x_{ij}`,
		"directory":       dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("Handle errored: %s", getResultText(result))
	}

	s, err := snapshot.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c, ok := s.GetConstraint("minimize_cost")
	if !ok {
		t.Fatal("constraint not persisted")
	}
	if c.Rank == nil || *c.Rank != 1 {
		t.Errorf("rank = %v, want 1", c.Rank)
	}
}

func TestRemoveConstraintTool_NotFound(t *testing.T) {
	tool := NewRemoveConstraintTool(NewWorkspace(), noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"name":      "ghost",
		"directory": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Error("not-found remove should not be an error result")
	}
	if getResultText(result) != "Constraint 'ghost' not found." {
		t.Errorf("result = %q", getResultText(result))
	}
}

func TestUpdateConstraintTool_PartialUpdate(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	addConstraint(t, ws, dir, "c1")

	tool := NewUpdateConstraintTool(ws, noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"name":        "c1",
		"description": "x",
		"directory":   dir,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("Handle errored: %s", getResultText(result))
	}

	s, err := snapshot.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c, ok := s.GetConstraint("c1")
	if !ok {
		t.Fatal("constraint missing")
	}
	if c.Description != "x" {
		t.Errorf("description = %q, want 'x'", c.Description)
	}
	if c.Type != snapshot.TypeHard {
		t.Errorf("type = %q changed, want 'hard'", c.Type)
	}
}

// --- add_scenario / remove_scenario ---

func TestScenarioTools(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()

	add := NewAddScenarioTool(ws, noJournal())
	result, err := add.Handle(context.Background(), callReq(map[string]any{
		"request_path": "scenarios/peak.json",
		"name":         "peak_day",
		"directory":    dir,
	}))
	if err != nil {
		t.Fatalf("add Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "Successfully added scenario 'peak_day'") {
		t.Errorf("unexpected confirmation: %s", getResultText(result))
	}

	remove := NewRemoveScenarioTool(ws, noJournal())
	result, err = remove.Handle(context.Background(), callReq(map[string]any{
		"scenario_name": "peak_day",
		"directory":     dir,
	}))
	if err != nil {
		t.Fatalf("remove Handle failed: %v", err)
	}
	if getResultText(result) != "Successfully removed scenario 'peak_day'." {
		t.Errorf("result = %q", getResultText(result))
	}

	result, err = remove.Handle(context.Background(), callReq(map[string]any{
		"scenario_name": "peak_day",
		"directory":     dir,
	}))
	if err != nil {
		t.Fatalf("second remove Handle failed: %v", err)
	}
	if getResultText(result) != "Scenario 'peak_day' not found." {
		t.Errorf("result = %q", getResultText(result))
	}
}

func TestAddScenarioTool_UnnamedConfirmation(t *testing.T) {
	tool := NewAddScenarioTool(NewWorkspace(), noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"request_path": "scenarios/one.json",
		"directory":    t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "unnamed scenario") {
		t.Errorf("unexpected confirmation: %s", getResultText(result))
	}
}

// --- schema tools ---

func TestSchemaTools_HalvesIndependent(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()

	reqTool := NewUpdateRequestSchemaTool(ws, noJournal())
	if _, err := reqTool.Handle(context.Background(), callReq(map[string]any{
		"schema":    map[string]any{"type": "object", "properties": map[string]any{"input": map[string]any{"type": "string"}}},
		"directory": dir,
	})); err != nil {
		t.Fatalf("request schema Handle failed: %v", err)
	}

	respTool := NewUpdateResponseSchemaTool(ws, noJournal())
	if _, err := respTool.Handle(context.Background(), callReq(map[string]any{
		"schema":    map[string]any{"type": "object", "properties": map[string]any{"output": map[string]any{"type": "string"}}},
		"directory": dir,
	})); err != nil {
		t.Fatalf("response schema Handle failed: %v", err)
	}

	s, err := snapshot.Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	def := s.SchemaDefinition()
	if def == nil {
		t.Fatal("schema definition missing")
	}
	if _, ok := def.RequestSchema["properties"]; !ok {
		t.Error("request half lost after response update")
	}
	if _, ok := def.ResponseSchema["properties"]; !ok {
		t.Error("response half missing")
	}
}

func TestSchemaTool_MissingSchemaArg(t *testing.T) {
	tool := NewUpdateRequestSchemaTool(NewWorkspace(), noJournal())
	result, err := tool.Handle(context.Background(), callReq(map[string]any{
		"directory": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing schema should produce an error result")
	}
}

// --- record_solver_run ---

func TestRecordRunTool(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()
	tool := NewRecordRunTool(ws, noJournal())

	args := map[string]any{
		"solver_script_name": "ortools_1",
		"input_file":         "scenarios/peak.json",
		"output_file":        "results/peak_out.json",
		"directory":          dir,
	}
	result, err := tool.Handle(context.Background(), callReq(args))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("Handle errored: %s", getResultText(result))
	}

	// Exact same triple again: rejected as a duplicate.
	result, err = tool.Handle(context.Background(), callReq(args))
	if err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("duplicate run should produce an error result")
	}

	// Different output file: a new record.
	args["output_file"] = "results/peak_out_2.json"
	result, err = tool.Handle(context.Background(), callReq(args))
	if err != nil {
		t.Fatalf("third Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("distinct triple rejected: %s", getResultText(result))
	}
}

// --- available_solver_dependencies ---

func TestDependenciesTool(t *testing.T) {
	tool := NewDependenciesTool()
	result, err := tool.Handle(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(getResultText(result), "pyomo") {
		t.Errorf("result = %q, want it to list pyomo", getResultText(result))
	}
}

// --- Workspace ---

func TestWorkspace_ReusesEngine(t *testing.T) {
	ws := NewWorkspace()
	dir := t.TempDir()

	first, err := ws.Settings(dir)
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	second, err := ws.Settings(dir)
	if err != nil {
		t.Fatalf("second Settings failed: %v", err)
	}
	if first != second {
		t.Error("workspace created a second engine for the same directory")
	}
}
