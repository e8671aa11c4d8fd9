// Package resources implements MCP resource handlers for the Torrow
// server.
//
// Resources provide read-only views over archives and notes, addressed
// by torrow:// URIs. Listing resources are static; individual records
// are exposed through URI templates.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// Handler serves the torrow:// resource tree.
type Handler struct {
	sessions *session.Manager
}

// NewHandler creates a resource Handler.
func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// noteJSON is the payload shape for a single note or archive.
type noteJSON struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Text string       `json:"text,omitempty"`
	Tags []string     `json:"tags,omitempty"`
	Type string       `json:"type"`
	Meta *torrow.Meta `json:"meta,omitempty"`
}

func toNoteJSON(note *torrow.Note) noteJSON {
	kind := "note"
	if note.IsArchive() {
		kind = "archive"
	}
	return noteJSON{
		ID:   note.ID,
		Name: note.Name,
		Text: note.Data,
		Tags: note.Tags,
		Type: kind,
		Meta: note.Meta,
	}
}

// URI patterns for the templated resources.
var (
	notePattern          = regexp.MustCompile(`^torrow://notes/([^/?]+)$`)
	archivePattern       = regexp.MustCompile(`^torrow://archives/([^/?]+)$`)
	archiveNotesPattern  = regexp.MustCompile(`^torrow://archives/([^/?]+)/notes(?:\?(.*))?$`)
	archivePinnedPattern = regexp.MustCompile(`^torrow://archives/([^/?]+)/pinned(?:\?(.*))?$`)
	queryParamPattern    = regexp.MustCompile(`(limit|skip)=(\d+)`)
)

// ArchivesResource returns the definition of the archive listing.
func (h *Handler) ArchivesResource() mcp.Resource {
	return mcp.NewResource(
		"torrow://archives",
		"Archives",
		mcp.WithResourceDescription("All archives under the root context"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleArchives returns all archives as JSON.
func (h *Handler) HandleArchives(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	archives, err := rt.Service.GetArchives(ctx)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	payload := make([]noteJSON, len(archives))
	for i := range archives {
		payload[i] = toNoteJSON(&archives[i])
	}
	return jsonResource(req.Params.URI, payload)
}

// SessionResource returns the definition of the selection snapshot.
func (h *Handler) SessionResource() mcp.Resource {
	return mcp.NewResource(
		"torrow://session",
		"Session selection",
		mcp.WithResourceDescription("The currently selected archive and note for this session"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSession returns the session's selection snapshot as JSON.
func (h *Handler) HandleSession(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, rt.Session.Snapshot())
}

// NoteTemplate returns the definition of the single-note template.
func (h *Handler) NoteTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"torrow://notes/{noteId}",
		"Note",
		mcp.WithTemplateDescription("A single note by id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleNote returns one note as JSON.
func (h *Handler) HandleNote(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	m := notePattern.FindStringSubmatch(req.Params.URI)
	if m == nil {
		return errorResource(req.Params.URI, "malformed note URI"), nil
	}
	note, err := rt.Service.GetNote(ctx, m[1])
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, toNoteJSON(note))
}

// ArchiveTemplate returns the definition of the single-archive template.
func (h *Handler) ArchiveTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"torrow://archives/{archiveId}",
		"Archive",
		mcp.WithTemplateDescription("A single archive by id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleArchive returns one archive as JSON.
func (h *Handler) HandleArchive(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	m := archivePattern.FindStringSubmatch(req.Params.URI)
	if m == nil {
		return errorResource(req.Params.URI, "malformed archive URI"), nil
	}
	archive, err := rt.Service.GetArchive(ctx, m[1])
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return jsonResource(req.Params.URI, toNoteJSON(archive))
}

// ArchiveNotesTemplate returns the definition of the member listing
// template.
func (h *Handler) ArchiveNotesTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"torrow://archives/{archiveId}/notes",
		"Archive notes",
		mcp.WithTemplateDescription("Notes inside an archive; supports ?limit= and ?skip="),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleArchiveNotes returns the members of an archive as JSON.
func (h *Handler) HandleArchiveNotes(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	m := archiveNotesPattern.FindStringSubmatch(req.Params.URI)
	if m == nil {
		return errorResource(req.Params.URI, "malformed archive notes URI"), nil
	}
	limit, skip := listParams(m[2])

	if _, err := rt.Service.GetArchive(ctx, m[1]); err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	notes, err := rt.Service.GetNotes(ctx, m[1], limit, skip)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	payload := make([]noteJSON, len(notes))
	for i := range notes {
		payload[i] = toNoteJSON(&notes[i])
	}
	return jsonResource(req.Params.URI, payload)
}

// ArchivePinnedTemplate returns the definition of the pinned member
// listing template.
func (h *Handler) ArchivePinnedTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"torrow://archives/{archiveId}/pinned",
		"Pinned archive notes",
		mcp.WithTemplateDescription("Pinned notes inside an archive; supports ?limit= and ?skip="),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleArchivePinned returns the pinned members of an archive as JSON.
func (h *Handler) HandleArchivePinned(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rt, err := h.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	m := archivePinnedPattern.FindStringSubmatch(req.Params.URI)
	if m == nil {
		return errorResource(req.Params.URI, "malformed pinned notes URI"), nil
	}
	limit, skip := listParams(m[2])

	if _, err := rt.Service.GetArchive(ctx, m[1]); err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	notes, err := rt.Service.GetPinnedNotes(ctx, m[1], limit, skip)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	payload := make([]noteJSON, len(notes))
	for i := range notes {
		payload[i] = toNoteJSON(&notes[i])
	}
	return jsonResource(req.Params.URI, payload)
}

// listParams parses limit/skip from a raw query string, defaulting to
// limit=10, skip=0.
func listParams(rawQuery string) (limit, skip int) {
	limit, skip = 10, 0
	for _, m := range queryParamPattern.FindAllStringSubmatch(rawQuery, -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch m[1] {
		case "limit":
			limit = n
		case "skip":
			skip = n
		}
	}
	return limit, skip
}

func jsonResource(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource payload: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
