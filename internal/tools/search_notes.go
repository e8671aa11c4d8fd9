package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// SearchNotesTool handles the search_notes MCP tool.
type SearchNotesTool struct {
	sessions *session.Manager
}

// NewSearchNotesTool creates a SearchNotesTool.
func NewSearchNotesTool(sessions *session.Manager) *SearchNotesTool {
	return &SearchNotesTool{sessions: sessions}
}

// Definition returns the MCP tool definition for search_notes.
func (t *SearchNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_notes",
		mcp.WithDescription(
			"Search notes by text and tags. Scoped to the currently selected archive unless "+
				"archiveId is given; pass global=true to search across all archives.",
		),
		mcp.WithString("query",
			mcp.Description("Text to search for"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags to filter by (without the leading #)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("archiveId",
			mcp.Description("Archive to search in (overrides the current selection)"),
		),
		mcp.WithBoolean("global",
			mcp.Description("Search across all archives instead of the current one"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 10)"),
		),
		mcp.WithNumber("skip",
			mcp.Description("Results to skip, for paging"),
		),
		mcp.WithNumber("distance",
			mcp.Description("Fuzzy-match distance (0 = exact)"),
		),
	)
}

// Handle processes the search_notes tool call.
func (t *SearchNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rt, err := t.sessions.Get(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := torrow.SearchParams{
		Text:     req.GetString("query", ""),
		Tags:     stringSliceArg(req, "tags"),
		Take:     intArg(req, "limit", 10),
		Skip:     intArg(req, "skip", 0),
		Distance: intArg(req, "distance", 0),
	}

	if !boolArg(req, "global", false) {
		archiveID, err := resolveArchiveID(req, rt.Session)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		params.GroupID = archiveID
	}

	notes, err := rt.Service.SearchNotes(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Archives satisfy the same search index; only plain notes belong
	// in the result.
	plain := notes[:0]
	for i := range notes {
		if !notes[i].IsArchive() {
			plain = append(plain, notes[i])
		}
	}

	if len(plain) == 0 {
		return mcp.NewToolResultText("No notes found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d note(s):\n%s", len(plain), renderNoteList(plain))), nil
}
