// Package prompts implements MCP prompt handlers for the Torrow server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to walk the archive/note tree in a specific way.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
)

// ListArchivesPrompt handles the list-archives MCP prompt.
type ListArchivesPrompt struct {
	sessions *session.Manager
}

// NewListArchivesPrompt creates a ListArchivesPrompt.
func NewListArchivesPrompt(sessions *session.Manager) *ListArchivesPrompt {
	return &ListArchivesPrompt{sessions: sessions}
}

// Definition returns the MCP prompt definition for registration.
func (p *ListArchivesPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("list-archives",
		mcp.WithPromptDescription("Show every archive with its id and description"),
	)
}

// Handle processes the list-archives prompt request.
func (p *ListArchivesPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	rt, err := p.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	archives, err := rt.Service.GetArchives(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing archives: %w", err)
	}

	var b strings.Builder
	if len(archives) == 0 {
		b.WriteString("There are no archives yet.")
	} else {
		fmt.Fprintf(&b, "There are %d archive(s):\n", len(archives))
		for i := range archives {
			fmt.Fprintf(&b, "- %s (id: %s)", archives[i].Name, archives[i].ID)
			if archives[i].Data != "" {
				fmt.Fprintf(&b, ": %s", archives[i].Data)
			}
			b.WriteByte('\n')
		}
	}

	return &mcp.GetPromptResult{
		Description: "Archive listing",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Here are my archives. Summarize them for me and suggest which one to work in.\n\n" + b.String(),
				),
			},
		},
	}, nil
}
