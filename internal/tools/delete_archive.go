package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// DeleteArchiveTool handles the delete_archive MCP tool.
type DeleteArchiveTool struct {
	sessions *session.Manager
}

// NewDeleteArchiveTool creates a DeleteArchiveTool.
func NewDeleteArchiveTool(sessions *session.Manager) *DeleteArchiveTool {
	return &DeleteArchiveTool{sessions: sessions}
}

// Definition returns the MCP tool definition for delete_archive.
func (t *DeleteArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_archive",
		mcp.WithDescription(
			"Delete an archive. With cascade=true the member notes are deleted too; "+
				"otherwise they become unlinked. Targets the currently selected archive unless archiveId is given.",
		),
		mcp.WithString("archiveId",
			mcp.Description("Explicit archive id (overrides the current selection)"),
		),
		mcp.WithBoolean("cascade",
			mcp.Description("Also delete every note in the archive (default false)"),
		),
	)
}

// Handle processes the delete_archive tool call.
func (t *DeleteArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	archiveID, err := resolveArchiveID(req, rt.Session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cascade := boolArg(req, "cascade", false)

	deleted, err := rt.Service.DeleteArchive(ctx, archiveID, cascade)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if rt.Session.ArchiveID() == deleted.ID {
		rt.Session.ClearArchive()
	}

	suffix := "its notes were kept"
	if cascade {
		suffix = "its notes were deleted with it"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted archive %q (id: %s); %s.", deleted.Name, deleted.ID, suffix)), nil
}
