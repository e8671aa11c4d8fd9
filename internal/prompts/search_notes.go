package prompts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// SearchNotesPrompt handles the search-notes MCP prompt.
type SearchNotesPrompt struct {
	sessions *session.Manager
}

// NewSearchNotesPrompt creates a SearchNotesPrompt.
func NewSearchNotesPrompt(sessions *session.Manager) *SearchNotesPrompt {
	return &SearchNotesPrompt{sessions: sessions}
}

// Definition returns the MCP prompt definition for registration.
func (p *SearchNotesPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("search-notes",
		mcp.WithPromptDescription("Search notes inside an archive and summarize the hits"),
		mcp.WithArgument("archiveId",
			mcp.ArgumentDescription("Archive to search in"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("query",
			mcp.ArgumentDescription("Text to search for"),
		),
		mcp.WithArgument("tags",
			mcp.ArgumentDescription("Comma-separated tags to filter by"),
		),
		mcp.WithArgument("limit",
			mcp.ArgumentDescription("Maximum results (default 10)"),
		),
		mcp.WithArgument("skip",
			mcp.ArgumentDescription("Results to skip, for paging"),
		),
		mcp.WithArgument("distance",
			mcp.ArgumentDescription("Fuzzy-match distance (0 = exact)"),
		),
	)
}

// Handle processes the search-notes prompt request.
func (p *SearchNotesPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	rt, err := p.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	args := req.Params.Arguments
	archiveID := args["archiveId"]
	if archiveID == "" {
		return nil, fmt.Errorf("archiveId is required")
	}

	params := torrow.SearchParams{
		Text:     args["query"],
		GroupID:  archiveID,
		Take:     intArgument(args, "limit", 10),
		Skip:     intArgument(args, "skip", 0),
		Distance: intArgument(args, "distance", 0),
	}
	if raw := args["tags"]; raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				params.Tags = append(params.Tags, tag)
			}
		}
	}

	notes, err := rt.Service.SearchNotes(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	var b strings.Builder
	if len(notes) == 0 {
		b.WriteString("The search returned no notes.")
	} else {
		fmt.Fprintf(&b, "The search returned %d note(s):\n", len(notes))
		for i := range notes {
			if notes[i].IsArchive() {
				continue
			}
			fmt.Fprintf(&b, "- %s (id: %s)", notes[i].Name, notes[i].ID)
			if len(notes[i].Tags) > 0 {
				fmt.Fprintf(&b, " [#%s]", strings.Join(notes[i].Tags, " #"))
			}
			b.WriteByte('\n')
		}
	}

	return &mcp.GetPromptResult{
		Description: "Note search results",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Here are my search results. Summarize them and point out the most relevant note.\n\n" + b.String(),
				),
			},
		},
	}, nil
}

// intArgument parses a numeric prompt argument, falling back to
// defaultVal when missing or malformed (prompt arguments are strings).
func intArgument(args map[string]string, key string, defaultVal int) int {
	raw, ok := args[key]
	if !ok || raw == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}
