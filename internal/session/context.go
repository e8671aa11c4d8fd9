// Package session tracks per-connection conversation state: which
// archive and note the caller is currently working with, plus the id of
// the provisioned root context. One Context serves one MCP session and
// lives only as long as the process — nothing here is persisted.
package session

// Snapshot is a value copy of the selection state. Empty strings mean
// "not selected".
type Snapshot struct {
	RootContextID string `json:"rootContextId,omitempty"`
	ArchiveID     string `json:"archiveId,omitempty"`
	ArchiveName   string `json:"archiveName,omitempty"`
	NoteID        string `json:"noteId,omitempty"`
	NoteName      string `json:"noteName,omitempty"`
}

// Context is the mutable selection cursor. It is not safe for
// concurrent use; the Manager hands each MCP session its own instance
// and calls within a session are handled one at a time.
type Context struct {
	state Snapshot
}

// New returns an empty selection.
func New() *Context {
	return &Context{}
}

// SetRootContextID remembers the provisioned root context id.
func (c *Context) SetRootContextID(id string) {
	c.state.RootContextID = id
}

// RootContextID returns the remembered root context id, if any.
func (c *Context) RootContextID() string {
	return c.state.RootContextID
}

// SetArchive selects an archive and, as one operation, clears the note
// selection: a note selection never survives an archive switch.
func (c *Context) SetArchive(id, name string) {
	c.state.ArchiveID = id
	c.state.ArchiveName = name
	c.state.NoteID = ""
	c.state.NoteName = ""
}

// ClearArchive drops the archive selection (and with it the note).
func (c *Context) ClearArchive() {
	c.SetArchive("", "")
}

// SetNote selects a note without touching the archive selection.
func (c *Context) SetNote(id, name string) {
	c.state.NoteID = id
	c.state.NoteName = name
}

// ClearNote drops only the note selection.
func (c *Context) ClearNote() {
	c.SetNote("", "")
}

// ArchiveID returns the selected archive id, or "".
func (c *Context) ArchiveID() string { return c.state.ArchiveID }

// ArchiveName returns the selected archive name, or "".
func (c *Context) ArchiveName() string { return c.state.ArchiveName }

// NoteID returns the selected note id, or "".
func (c *Context) NoteID() string { return c.state.NoteID }

// NoteName returns the selected note name, or "".
func (c *Context) NoteName() string { return c.state.NoteName }

// HasArchive reports whether an archive is currently selected.
func (c *Context) HasArchive() bool { return c.state.ArchiveID != "" }

// HasNote reports whether a note is currently selected.
func (c *Context) HasNote() bool { return c.state.NoteID != "" }

// Snapshot returns a copy of the state. Mutating the returned value
// never affects the Context.
func (c *Context) Snapshot() Snapshot {
	return c.state
}

// Clear resets the selection to empty, including the root context id.
func (c *Context) Clear() {
	c.state = Snapshot{}
}
