package torrow

import "slices"

// PublicReaderRole is the group role that marks a note as an archive.
// The Torrow API has no dedicated archive type: a note whose group
// search roles include this sentinel is treated as a container.
const PublicReaderRole = "PublicReader"

// Note is a single record in the Torrow store. Archives are notes too —
// see Note.IsArchive.
type Note struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Data      string     `json:"data,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	NoteType  string     `json:"noteType,omitempty"`
	Meta      *Meta      `json:"meta,omitempty"`
	GroupInfo *GroupInfo `json:"groupInfo,omitempty"`
}

// Meta holds server-maintained bookkeeping. Read-only on this side.
type Meta struct {
	Version      int    `json:"version"`
	CreatedDate  string `json:"createdDate"`
	ModifiedDate string `json:"modifiedDate"`
}

// GroupInfo is present on notes that have been converted to groups.
type GroupInfo struct {
	RolesToSearchItems []string `json:"rolesToSearchItems,omitempty"`
}

// IsArchive reports whether the note carries the archive discriminator.
// This is the sole distinction between an archive and a plain note, so
// callers must re-check it on every freshly fetched record rather than
// trusting a previously observed value.
func (n *Note) IsArchive() bool {
	if n == nil || n.GroupInfo == nil {
		return false
	}
	return slices.Contains(n.GroupInfo.RolesToSearchItems, PublicReaderRole)
}

// Context is a Torrow "раздел" — a top-level container, distinct from
// notes and archives. The service keeps all archives under one of these.
type Context struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateNoteInfo carries the caller-provided fields for a new note.
// Tags are not sent with the create request; they are attached when the
// note is linked into its group.
type CreateNoteInfo struct {
	Name     string
	Data     string
	Tags     []string
	NoteType string
}

// SearchParams are the knobs of the note search endpoint. Zero values
// mean "use the server default" (take falls back to 10).
type SearchParams struct {
	Text     string
	Take     int
	Skip     int
	GroupID  string
	Tags     []string
	Distance int
}

// ViewItemObject is the nested identity block of a view row.
type ViewItemObject struct {
	ID   string `json:"id"`
	Meta *Meta  `json:"meta,omitempty"`
}

// NoteView is the row shape returned by the /views/* and search
// endpoints. It flattens into a Note via NoteView.Note.
type NoteView struct {
	ItemObject *ViewItemObject `json:"itemObject,omitempty"`
	Name       string          `json:"name"`
	Data       string          `json:"data,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	NoteType   string          `json:"noteType,omitempty"`
	GroupInfo  *GroupInfo      `json:"groupInfo,omitempty"`
}

// Note converts a view row to the canonical Note shape.
func (v NoteView) Note() Note {
	n := Note{
		Name:      v.Name,
		Data:      v.Data,
		Tags:      v.Tags,
		NoteType:  v.NoteType,
		GroupInfo: v.GroupInfo,
	}
	if v.ItemObject != nil {
		n.ID = v.ItemObject.ID
		n.Meta = v.ItemObject.Meta
	}
	return n
}
