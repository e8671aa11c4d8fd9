package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/phrase"
	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// UpdateNoteTool handles the update_note MCP tool.
type UpdateNoteTool struct {
	sessions *session.Manager
}

// NewUpdateNoteTool creates an UpdateNoteTool.
func NewUpdateNoteTool(sessions *session.Manager) *UpdateNoteTool {
	return &UpdateNoteTool{sessions: sessions}
}

// Definition returns the MCP tool definition for update_note.
func (t *UpdateNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("update_note",
		mcp.WithDescription(
			"Update a note from a phrase. Phrase format: '<name>.<text> #tag1 #tag2'. "+
				"Fields absent from the phrase keep their current value: no dot leaves the text untouched, "+
				"no tags leave the tags untouched. Targets the currently selected note unless noteId is given.",
		),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description("The update phrase, e.g. 'Pasta.Boil 12 min #food'"),
		),
		mcp.WithString("noteId",
			mcp.Description("Explicit note id (overrides the current selection)"),
		),
	)
}

// Handle processes the update_note tool call.
func (t *UpdateNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	noteID, err := resolveNoteID(req, rt.Session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	parsed, err := phrase.Parse(req.GetString("phrase", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := phrase.ValidateName(parsed.Name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := rt.Service.UpdateNote(ctx, noteID, &parsed.Name, parsed.Text, parsed.Tags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if rt.Session.NoteID() == updated.ID {
		rt.Session.SetNote(updated.ID, updated.Name)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Updated note.\n%s", renderNote(updated))), nil
}
