package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// DeleteNoteTool handles the delete_note MCP tool.
type DeleteNoteTool struct {
	sessions *session.Manager
}

// NewDeleteNoteTool creates a DeleteNoteTool.
func NewDeleteNoteTool(sessions *session.Manager) *DeleteNoteTool {
	return &DeleteNoteTool{sessions: sessions}
}

// Definition returns the MCP tool definition for delete_note.
func (t *DeleteNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_note",
		mcp.WithDescription(
			"Delete a note. Targets the currently selected note unless noteId is given.",
		),
		mcp.WithString("noteId",
			mcp.Description("Explicit note id (overrides the current selection)"),
		),
	)
}

// Handle processes the delete_note tool call.
func (t *DeleteNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	noteID, err := resolveNoteID(req, rt.Session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deleted, err := rt.Service.DeleteNote(ctx, noteID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if rt.Session.NoteID() == deleted.ID {
		rt.Session.ClearNote()
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted note %q (id: %s).", deleted.Name, deleted.ID)), nil
}
