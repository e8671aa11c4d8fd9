package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/phrase"
	"github.com/torrowlabs/torrow-mcp/internal/service"
	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// CreateArchiveTool handles the create_archive MCP tool.
type CreateArchiveTool struct {
	sessions *session.Manager
}

// NewCreateArchiveTool creates a CreateArchiveTool.
func NewCreateArchiveTool(sessions *session.Manager) *CreateArchiveTool {
	return &CreateArchiveTool{sessions: sessions}
}

// Definition returns the MCP tool definition for create_archive.
func (t *CreateArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("create_archive",
		mcp.WithDescription(
			fmt.Sprintf("Create a new archive from a phrase ('<name>.<description> #tag'). "+
				"At most %d archives can exist; names must be unique. "+
				"The new archive becomes the current selection.", service.MaxArchives),
		),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description("The archive phrase, e.g. 'Recipes.Everything I cook #food'"),
		),
	)
}

// Handle processes the create_archive tool call.
func (t *CreateArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	info := torrow.CreateNoteInfo{Name: parsed.Name, Tags: parsed.Tags}
	if parsed.Text != nil {
		info.Data = *parsed.Text
	}

	archive, err := rt.Service.CreateArchive(ctx, info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rt.Session.SetArchive(archive.ID, archive.Name)
	if root, err := rt.Service.RootContext(ctx); err == nil {
		rt.Session.SetRootContextID(root.ID)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created archive %q (id: %s). It is now the current archive.", archive.Name, archive.ID,
	)), nil
}
