// Package resources implements MCP resource handlers for OptiGen.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (optigen://...) following MCP conventions.
package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/optigen/optigen/internal/snapshot"
)

// Handler manages OptiGen resource endpoints.
type Handler struct{}

// NewHandler creates a resource Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// SnapshotResource returns the MCP resource definition for the current
// project snapshot.
func (h *Handler) SnapshotResource() mcp.Resource {
	return mcp.NewResource(
		"optigen://project/snapshot",
		"OptiGen Project Snapshot",
		mcp.WithResourceDescription("The complete optimization-problem specification: title, constraints, schemas, dataset and solver runs"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSnapshot returns the current snapshot document as JSON.
func (h *Handler) HandleSnapshot(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	s, err := snapshot.Open(root, nil)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	text, err := s.JSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
