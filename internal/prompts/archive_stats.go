package prompts

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// statsPageSize bounds the member listing behind the stats prompt.
const statsPageSize = 100

// ArchiveStatsPrompt handles the archive-stats MCP prompt.
type ArchiveStatsPrompt struct {
	sessions *session.Manager
}

// NewArchiveStatsPrompt creates an ArchiveStatsPrompt.
func NewArchiveStatsPrompt(sessions *session.Manager) *ArchiveStatsPrompt {
	return &ArchiveStatsPrompt{sessions: sessions}
}

// Definition returns the MCP prompt definition for registration.
func (p *ArchiveStatsPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("archive-stats",
		mcp.WithPromptDescription("Summarize an archive: note count, tag frequency, member listing"),
		mcp.WithArgument("archiveId",
			mcp.ArgumentDescription("Archive to summarize"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the archive-stats prompt request.
func (p *ArchiveStatsPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	rt, err := p.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	archiveID := req.Params.Arguments["archiveId"]
	if archiveID == "" {
		return nil, fmt.Errorf("archiveId is required")
	}

	archive, err := rt.Service.GetArchive(ctx, archiveID)
	if err != nil {
		return nil, fmt.Errorf("loading archive: %w", err)
	}
	notes, err := rt.Service.GetNotes(ctx, archiveID, statsPageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("listing archive members: %w", err)
	}

	tagCounts := make(map[string]int)
	for i := range notes {
		for _, tag := range notes[i].Tags {
			tagCounts[tag]++
		}
	}
	tags := make([]string, 0, len(tagCounts))
	for tag := range tagCounts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tagCounts[tags[i]] != tagCounts[tags[j]] {
			return tagCounts[tags[i]] > tagCounts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Archive %q (id: %s) holds %d note(s).\n", archive.Name, archive.ID, len(notes))
	if len(tags) > 0 {
		b.WriteString("Tag frequency:\n")
		for _, tag := range tags {
			fmt.Fprintf(&b, "- #%s: %d\n", tag, tagCounts[tag])
		}
	}
	if len(notes) > 0 {
		b.WriteString("Notes:\n")
		for i := range notes {
			fmt.Fprintf(&b, "- %s (id: %s)\n", notes[i].Name, notes[i].ID)
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Stats for archive %q", archive.Name),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Here is an overview of one of my archives. Summarize what it is used for.\n\n" + b.String(),
				),
			},
		},
	}, nil
}
