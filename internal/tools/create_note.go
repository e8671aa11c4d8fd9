package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/phrase"
	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// CreateNoteTool handles the create_note MCP tool.
type CreateNoteTool struct {
	sessions *session.Manager
}

// NewCreateNoteTool creates a CreateNoteTool.
func NewCreateNoteTool(sessions *session.Manager) *CreateNoteTool {
	return &CreateNoteTool{sessions: sessions}
}

// Definition returns the MCP tool definition for create_note.
func (t *CreateNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription(
			"Create a note inside an archive from a single phrase. "+
				"Phrase format: '<name>.<text> #tag1 #tag2' — everything before the first dot is the name, "+
				"the rest is the note text, #tags can appear anywhere. "+
				"Targets the currently selected archive unless archiveId or archiveName is given.",
		),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description("The note phrase, e.g. 'Pasta.Boil 10 min #food'"),
		),
		mcp.WithString("archiveId",
			mcp.Description("Explicit archive id (overrides the current selection)"),
		),
		mcp.WithString("archiveName",
			mcp.Description("Archive name to look up when the id is unknown"),
		),
	)
}

// Handle processes the create_note tool call.
func (t *CreateNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
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

	archiveID := req.GetString("archiveId", "")
	if archiveID == "" {
		if name := req.GetString("archiveName", ""); name != "" {
			archive := rt.Service.FindArchiveByName(ctx, name)
			if archive == nil {
				return mcp.NewToolResultError(fmt.Sprintf("archive named %q not found", name)), nil
			}
			archiveID = archive.ID
		}
	}
	if archiveID == "" {
		resolved, err := resolveArchiveID(req, rt.Session)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		archiveID = resolved
	}

	info := torrow.CreateNoteInfo{Name: parsed.Name, Tags: parsed.Tags}
	if parsed.Text != nil {
		info.Data = *parsed.Text
	}

	created, err := rt.Service.CreateNoteInArchive(ctx, info, archiveID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rt.Session.SetNote(created.ID, created.Name)

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created note %q in archive %q.\n%s", created.Name, created.ArchiveName, renderNote(&created.Note),
	)), nil
}
