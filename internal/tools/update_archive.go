package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/phrase"
	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// UpdateArchiveTool handles the update_archive MCP tool.
type UpdateArchiveTool struct {
	sessions *session.Manager
}

// NewUpdateArchiveTool creates an UpdateArchiveTool.
func NewUpdateArchiveTool(sessions *session.Manager) *UpdateArchiveTool {
	return &UpdateArchiveTool{sessions: sessions}
}

// Definition returns the MCP tool definition for update_archive.
func (t *UpdateArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("update_archive",
		mcp.WithDescription(
			"Update an archive from a phrase ('<name>.<description> #tag'). "+
				"Fields absent from the phrase keep their current value. "+
				"Targets the currently selected archive unless archiveId is given.",
		),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description("The update phrase, e.g. 'Recipes.Now with desserts too #food'"),
		),
		mcp.WithString("archiveId",
			mcp.Description("Explicit archive id (overrides the current selection)"),
		),
	)
}

// Handle processes the update_archive tool call.
func (t *UpdateArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	archiveID, err := resolveArchiveID(req, rt.Session)
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

	updated, err := rt.Service.UpdateArchive(ctx, archiveID, &parsed.Name, parsed.Text, parsed.Tags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Updated archive.\n%s", renderNote(updated))), nil
}
