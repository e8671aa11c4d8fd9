// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it builds the per-session runtime
// factory and injects the session manager into every tool, resource and
// prompt handler. No business logic lives here — only wiring.
package server

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/server"

	"github.com/torrowlabs/torrow-mcp/internal/config"
	"github.com/torrowlabs/torrow-mcp/internal/prompts"
	"github.com/torrowlabs/torrow-mcp/internal/resources"
	"github.com/torrowlabs/torrow-mcp/internal/service"
	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/tools"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(cfg *config.Config) *server.MCPServer {
	sessions := session.NewManager(runtimeFactory(cfg))

	hooks := &server.Hooks{}
	hooks.AddOnUnregisterSession(func(ctx context.Context, s server.ClientSession) {
		sessions.Remove(s.SessionID())
	})

	srv := server.NewMCPServer(
		cfg.ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
		server.WithHooks(hooks),
	)

	// --- Register tools ---

	createArchive := tools.NewCreateArchiveTool(sessions)
	srv.AddTool(createArchive.Definition(), createArchive.Handle)

	updateArchive := tools.NewUpdateArchiveTool(sessions)
	srv.AddTool(updateArchive.Definition(), updateArchive.Handle)

	deleteArchive := tools.NewDeleteArchiveTool(sessions)
	srv.AddTool(deleteArchive.Definition(), deleteArchive.Handle)

	createNote := tools.NewCreateNoteTool(sessions)
	srv.AddTool(createNote.Definition(), createNote.Handle)

	updateNote := tools.NewUpdateNoteTool(sessions)
	srv.AddTool(updateNote.Definition(), updateNote.Handle)

	deleteNote := tools.NewDeleteNoteTool(sessions)
	srv.AddTool(deleteNote.Definition(), deleteNote.Handle)

	searchNotes := tools.NewSearchNotesTool(sessions)
	srv.AddTool(searchNotes.Definition(), searchNotes.Handle)

	selectArchive := tools.NewSelectArchiveTool(sessions)
	srv.AddTool(selectArchive.Definition(), selectArchive.Handle)

	selectNote := tools.NewSelectNoteTool(sessions)
	srv.AddTool(selectNote.Definition(), selectNote.Handle)

	clearSelection := tools.NewClearSelectionTool(sessions)
	srv.AddTool(clearSelection.Definition(), clearSelection.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(sessions)
	srv.AddResource(resourceHandler.ArchivesResource(), resourceHandler.HandleArchives)
	srv.AddResource(resourceHandler.SessionResource(), resourceHandler.HandleSession)
	srv.AddResourceTemplate(resourceHandler.NoteTemplate(), resourceHandler.HandleNote)
	srv.AddResourceTemplate(resourceHandler.ArchiveTemplate(), resourceHandler.HandleArchive)
	srv.AddResourceTemplate(resourceHandler.ArchiveNotesTemplate(), resourceHandler.HandleArchiveNotes)
	srv.AddResourceTemplate(resourceHandler.ArchivePinnedTemplate(), resourceHandler.HandleArchivePinned)

	// --- Register prompts ---

	listArchives := prompts.NewListArchivesPrompt(sessions)
	srv.AddPrompt(listArchives.Definition(), listArchives.Handle)

	searchPrompt := prompts.NewSearchNotesPrompt(sessions)
	srv.AddPrompt(searchPrompt.Definition(), searchPrompt.Handle)

	statsPrompt := prompts.NewArchiveStatsPrompt(sessions)
	srv.AddPrompt(statsPrompt.Definition(), statsPrompt.Handle)

	return srv
}

// runtimeFactory builds the per-session runtime. HTTP sessions must
// bring their own bearer token; the configured token is only a fallback
// for stdio sessions, or for HTTP when DangerouslyOmitAuth is set.
func runtimeFactory(cfg *config.Config) session.Factory {
	return func(ctx context.Context) (*session.Runtime, error) {
		token := TokenFromContext(ctx)
		if token == "" {
			if isHTTPTransport(ctx) && !cfg.DangerouslyOmitAuth {
				return nil, errors.New("missing Authorization bearer token")
			}
			token = cfg.Token
		}

		client, err := torrow.NewClient(token, cfg.APIBase)
		if err != nil {
			return nil, err
		}
		return &session.Runtime{
			Service: service.New(client),
			Session: session.New(),
		}, nil
	}
}

// serverInstructions tells the AI how to drive the archive/note model.
func serverInstructions() string {
	return `You have access to Torrow notes organized as archives containing notes.

## Model
- An archive is a container of notes. At most 10 archives exist.
- A session has a current archive and a current note. Most tools target
  the current selection when no explicit id is passed.
- Selecting an archive always clears the current note.

## Phrases
create_note, update_note, create_archive and update_archive take a single
phrase: '<name>.<text> #tag1 #tag2'. Everything before the first dot is
the name, the rest is the text, #tags can appear anywhere and are
stripped from both parts. A phrase without a dot sets only the name.

## Typical flow
1. select_archive (no arguments) to see the archives.
2. select_archive with name or archiveId to pick one.
3. create_note / search_notes / select_note inside it.
4. update_note / delete_note act on the current note.

Resources: torrow://archives, torrow://session, torrow://notes/{id},
torrow://archives/{id}, torrow://archives/{id}/notes.`
}
