package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// ClearSelectionTool handles the clear_selection MCP tool.
type ClearSelectionTool struct {
	sessions *session.Manager
}

// NewClearSelectionTool creates a ClearSelectionTool.
func NewClearSelectionTool(sessions *session.Manager) *ClearSelectionTool {
	return &ClearSelectionTool{sessions: sessions}
}

// Definition returns the MCP tool definition for clear_selection.
func (t *ClearSelectionTool) Definition() mcp.Tool {
	return mcp.NewTool("clear_selection",
		mcp.WithDescription(
			"Clear the current selection. scope='note' clears only the note; "+
				"the default clears both the archive and the note.",
		),
		mcp.WithString("scope",
			mcp.Description("What to clear: 'all' (default) or 'note'"),
			mcp.Enum("all", "note"),
		),
	)
}

// Handle processes the clear_selection tool call.
func (t *ClearSelectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if req.GetString("scope", "all") == "note" {
		rt.Session.ClearNote()
		return mcp.NewToolResultText("Note selection cleared."), nil
	}

	rt.Session.Clear()
	return mcp.NewToolResultText("Selection cleared."), nil
}
