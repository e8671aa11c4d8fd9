package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// SelectArchiveTool handles the select_archive MCP tool.
type SelectArchiveTool struct {
	sessions *session.Manager
}

// NewSelectArchiveTool creates a SelectArchiveTool.
func NewSelectArchiveTool(sessions *session.Manager) *SelectArchiveTool {
	return &SelectArchiveTool{sessions: sessions}
}

// Definition returns the MCP tool definition for select_archive.
func (t *SelectArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("select_archive",
		mcp.WithDescription(
			"Select an archive as the current one, by id or by name. "+
				"Selecting an archive always clears the current note selection. "+
				"With no arguments, lists the available archives instead.",
		),
		mcp.WithString("archiveId",
			mcp.Description("Archive id to select"),
		),
		mcp.WithString("name",
			mcp.Description("Archive name to select (case-insensitive exact match)"),
		),
	)
}

// Handle processes the select_archive tool call.
func (t *SelectArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var archive *torrow.Note
	switch {
	case req.GetString("archiveId", "") != "":
		archive, err = rt.Service.GetArchive(ctx, req.GetString("archiveId", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case req.GetString("name", "") != "":
		name := req.GetString("name", "")
		archive = rt.Service.FindArchiveByName(ctx, name)
		if archive == nil {
			return mcp.NewToolResultError(fmt.Sprintf("archive named %q not found", name)), nil
		}
	default:
		archives, err := rt.Service.GetArchives(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(archives) == 0 {
			return mcp.NewToolResultText("No archives yet. Use create_archive to make one."), nil
		}
		return mcp.NewToolResultText("Available archives:\n" + renderNoteList(archives)), nil
	}

	rt.Session.SetArchive(archive.ID, archive.Name)

	return mcp.NewToolResultText(fmt.Sprintf("Current archive is now %q (id: %s).", archive.Name, archive.ID)), nil
}
