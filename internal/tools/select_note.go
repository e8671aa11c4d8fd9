package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// SelectNoteTool handles the select_note MCP tool.
type SelectNoteTool struct {
	sessions *session.Manager
}

// NewSelectNoteTool creates a SelectNoteTool.
func NewSelectNoteTool(sessions *session.Manager) *SelectNoteTool {
	return &SelectNoteTool{sessions: sessions}
}

// Definition returns the MCP tool definition for select_note.
func (t *SelectNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("select_note",
		mcp.WithDescription(
			"Select a note as the current one, by id or by name. "+
				"Selecting by name searches inside the currently selected archive.",
		),
		mcp.WithString("noteId",
			mcp.Description("Note id to select"),
		),
		mcp.WithString("name",
			mcp.Description("Note name to select (case-insensitive exact match within the current archive)"),
		),
	)
}

// Handle processes the select_note tool call.
func (t *SelectNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var note *torrow.Note
	switch {
	case req.GetString("noteId", "") != "":
		note, err = rt.Service.GetNote(ctx, req.GetString("noteId", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case req.GetString("name", "") != "":
		if !rt.Session.HasArchive() {
			return mcp.NewToolResultError((&MissingSelectionError{Kind: "archive"}).Error()), nil
		}
		name := req.GetString("name", "")
		note = rt.Service.FindNoteByName(ctx, name, rt.Session.ArchiveID())
		if note == nil {
			return mcp.NewToolResultError(fmt.Sprintf(
				"note named %q not found in archive %q", name, rt.Session.ArchiveName(),
			)), nil
		}
	default:
		return mcp.NewToolResultError("pass noteId or name"), nil
	}

	rt.Session.SetNote(note.ID, note.Name)

	return mcp.NewToolResultText(fmt.Sprintf("Current note is now %q (id: %s).", note.Name, note.ID)), nil
}
