// Package tools implements the MCP tool handlers for the Torrow server.
//
// Each tool follows the same pattern:
// - A struct holding the session manager, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() resolves the per-session runtime, runs the domain
//   operation and renders a human-readable result
//
// Handlers only extract arguments and format results; every invariant
// lives in internal/service.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// MissingSelectionError means an operation needed a current archive or
// note and the caller neither selected one nor passed an explicit id.
type MissingSelectionError struct {
	Kind string // "archive" or "note"
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("no %s selected: pass an explicit id or select one first", e.Kind)
}

// intArg extracts an integer argument, returning defaultVal if the key
// is missing or not a number (JSON numbers arrive as float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringSliceArg extracts a string-array argument. JSON arrays arrive
// as []any; non-string elements are skipped.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// resolveArchiveID picks the target archive for a tool call: an
// explicit archiveId argument wins, then the session selection.
func resolveArchiveID(req mcp.CallToolRequest, sess *session.Context) (string, error) {
	if id := req.GetString("archiveId", ""); id != "" {
		return id, nil
	}
	if sess.HasArchive() {
		return sess.ArchiveID(), nil
	}
	return "", &MissingSelectionError{Kind: "archive"}
}

// resolveNoteID picks the target note for a tool call, same precedence
// as resolveArchiveID.
func resolveNoteID(req mcp.CallToolRequest, sess *session.Context) (string, error) {
	if id := req.GetString("noteId", ""); id != "" {
		return id, nil
	}
	if sess.HasNote() {
		return sess.NoteID(), nil
	}
	return "", &MissingSelectionError{Kind: "note"}
}

// renderNote formats one note for a tool result.
func renderNote(note *torrow.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (id: %s)", note.Name, note.ID)
	if len(note.Tags) > 0 {
		fmt.Fprintf(&b, " [#%s]", strings.Join(note.Tags, " #"))
	}
	if note.Data != "" {
		fmt.Fprintf(&b, "\n%s", note.Data)
	}
	return b.String()
}

// renderNoteList formats a listing of notes, one bullet per line.
func renderNoteList(notes []torrow.Note) string {
	var b strings.Builder
	for i := range notes {
		note := &notes[i]
		fmt.Fprintf(&b, "• %s (id: %s)", note.Name, note.ID)
		if len(note.Tags) > 0 {
			fmt.Fprintf(&b, " [#%s]", strings.Join(note.Tags, " #"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
