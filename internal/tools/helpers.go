package tools

import "github.com/mark3labs/mcp-go/mcp"

// optionalString reads a string argument that may be absent. Unlike
// GetString with a default, it distinguishes "not provided" from "provided
// as empty". Partial updates need the difference.
func optionalString(req mcp.CallToolRequest, key string) (string, bool) {
	v, ok := req.GetArguments()[key].(string)
	return v, ok
}

// optionalInt reads a number argument that may be absent. JSON numbers
// arrive as float64.
func optionalInt(req mcp.CallToolRequest, key string) (int, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return int(v), ok
}

// descriptionSummary trims long free text so journal entries stay scannable.
func descriptionSummary(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
