// Package service is the domain core: it imposes a two-level
// archive→note hierarchy, identity rules and cardinality limits on top
// of the flat Torrow note store.
//
// The store itself only knows individual notes connected by group
// links; everything "hierarchical" — the hidden root context, the
// archive discriminator, name uniqueness, the 10-archive ceiling — is
// enforced here, and re-verified on every call rather than cached.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

const (
	// MaxArchives is the hard ceiling on archives under the root
	// context, enforced client-side before creation.
	MaxArchives = 10

	// RootContextName is the name of the hidden container all
	// archives live under. Matched exactly.
	RootContextName = "MCP"

	// archivePageSize bounds the root-context member listing.
	archivePageSize = 20

	// findPageSize bounds the scoped search behind FindNoteByName.
	findPageSize = 50

	// existsPageSize bounds the scoped search behind NoteExistsInArchive.
	existsPageSize = 20
)

// Store is the slice of the Torrow API the service depends on.
// *torrow.Client satisfies it; tests substitute a fake.
type Store interface {
	CreateNote(ctx context.Context, info torrow.CreateNoteInfo, parentID string) (*torrow.Note, error)
	UpdateNote(ctx context.Context, note *torrow.Note) (*torrow.Note, error)
	DeleteNote(ctx context.Context, id string, cascade bool) error
	GetNote(ctx context.Context, id string) (*torrow.Note, error)
	SetNoteAsGroup(ctx context.Context, id string) error
	AddNoteToGroup(ctx context.Context, noteID, parentID string, tags []string) error
	SearchNotes(ctx context.Context, params torrow.SearchParams) ([]torrow.NoteView, error)
	GetUserNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]torrow.NoteView, error)
	GetPinnedNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]torrow.NoteView, error)
	GetContexts(ctx context.Context) ([]torrow.Context, error)
	CreateContext(ctx context.Context, name string) (*torrow.Context, error)
}

// NoteInArchive is a note annotated with its owning archive, returned
// by CreateNoteInArchive so callers can render both names.
type NoteInArchive struct {
	torrow.Note
	ArchiveID   string
	ArchiveName string
}

// Service enforces archive/note semantics for one session. Each
// session gets its own instance: the root-context cache below must
// never be shared between callers.
type Service struct {
	store Store

	// rootContext memoizes the provisioned root context for the life
	// of this instance. It is never refreshed; a root context renamed
	// or deleted out-of-band goes unnoticed until restart.
	mu          sync.Mutex
	rootContext *torrow.Context
}

// New creates a Service over the given store.
func New(store Store) *Service {
	return &Service{store: store}
}

// fetch loads a raw record and normalizes "nothing there" into
// NotFoundError. The kind only flavors the error message.
func (s *Service) fetch(ctx context.Context, id, kind string) (*torrow.Note, error) {
	if id == "" {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		var apiErr *torrow.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{Kind: kind, ID: id}
		}
		return nil, err
	}
	if note == nil || note.ID == "" {
		return nil, &NotFoundError{Kind: kind, ID: id}
	}
	return note, nil
}

// GetNote loads a plain note. The discriminator is checked on the
// fresh record: addressing an archive through this accessor fails.
func (s *Service) GetNote(ctx context.Context, id string) (*torrow.Note, error) {
	note, err := s.fetch(ctx, id, KindNote)
	if err != nil {
		return nil, err
	}
	if note.IsArchive() {
		return nil, &WrongKindError{ID: id, Want: KindNote}
	}
	return note, nil
}

// GetArchive loads an archive, requiring the discriminator to be set.
func (s *Service) GetArchive(ctx context.Context, id string) (*torrow.Note, error) {
	archive, err := s.fetch(ctx, id, KindArchive)
	if err != nil {
		return nil, err
	}
	if !archive.IsArchive() {
		return nil, &WrongKindError{ID: id, Want: KindArchive}
	}
	return archive, nil
}

// GetNotes lists the members of an archive.
func (s *Service) GetNotes(ctx context.Context, archiveID string, take, skip int) ([]torrow.Note, error) {
	views, err := s.store.GetUserNotesByParentID(ctx, archiveID, take, skip)
	if err != nil {
		return nil, err
	}
	return notesFromViews(views), nil
}

// GetPinnedNotes lists the pinned members of an archive.
func (s *Service) GetPinnedNotes(ctx context.Context, archiveID string, take, skip int) ([]torrow.Note, error) {
	views, err := s.store.GetPinnedNotesByParentID(ctx, archiveID, take, skip)
	if err != nil {
		return nil, err
	}
	return notesFromViews(views), nil
}

// SearchNotes runs a text/tag search, optionally scoped to an archive.
func (s *Service) SearchNotes(ctx context.Context, params torrow.SearchParams) ([]torrow.Note, error) {
	views, err := s.store.SearchNotes(ctx, params)
	if err != nil {
		return nil, err
	}
	return notesFromViews(views), nil
}

// CreateNoteInArchive creates a note and links it into an archive.
//
// The archive is re-resolved (and discriminator-checked) first, then
// the name is checked for a case-insensitive collision inside it. The
// create and the group link are two separate remote calls: a failure
// in between leaves an orphaned, unlinked note that this layer neither
// detects nor cleans up.
func (s *Service) CreateNoteInArchive(ctx context.Context, info torrow.CreateNoteInfo, archiveID string) (*NoteInArchive, error) {
	archive, err := s.GetArchive(ctx, archiveID)
	if err != nil {
		return nil, err
	}

	if s.NoteExistsInArchive(ctx, info.Name, archive.ID) {
		return nil, &DuplicateNameError{Name: info.Name, Archive: archive.Name}
	}

	note, err := s.store.CreateNote(ctx, info, archiveID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.ID == "" {
		return nil, fmt.Errorf("creating note in archive %q: store returned no id", archive.Name)
	}

	if err := s.store.AddNoteToGroup(ctx, note.ID, archiveID, info.Tags); err != nil {
		return nil, err
	}

	return &NoteInArchive{Note: *note, ArchiveID: archive.ID, ArchiveName: archive.Name}, nil
}

// UpdateNote applies the provided fields to a note. Nil name/text leave
// the current values untouched; an empty-but-present tag list is also
// treated as "no change". Renames are not re-checked for uniqueness.
func (s *Service) UpdateNote(ctx context.Context, id string, name, text *string, tags []string) (*torrow.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	applyFields(note, name, text, tags)
	if _, err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote deletes a note and returns its pre-deletion snapshot so
// the caller can still render the name.
func (s *Service) DeleteNote(ctx context.Context, id string) (*torrow.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteNote(ctx, id, false); err != nil {
		return nil, err
	}
	return note, nil
}

// CreateArchive creates a note under the root context and converts it
// into an archive. It enforces the MaxArchives ceiling and
// case-insensitive name uniqueness among existing archives, then
// re-reads the archive list to confirm the new archive is actually
// visible — the remote store is eventually consistent and a create
// that never surfaces would otherwise go unnoticed.
func (s *Service) CreateArchive(ctx context.Context, info torrow.CreateNoteInfo) (*torrow.Note, error) {
	root, err := s.RootContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetArchives(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) >= MaxArchives {
		return nil, &QuotaExceededError{Limit: MaxArchives}
	}
	for _, archive := range existing {
		if strings.EqualFold(archive.Name, info.Name) {
			return nil, &DuplicateNameError{Name: info.Name}
		}
	}

	note, err := s.store.CreateNote(ctx, info, root.ID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.ID == "" {
		return nil, errors.New("creating archive: store returned no id")
	}
	if err := s.store.SetNoteAsGroup(ctx, note.ID); err != nil {
		return nil, err
	}

	// Post-create verification: the new archive must be listed under
	// the root context.
	after, err := s.GetArchives(ctx)
	if err != nil {
		return nil, err
	}
	for _, archive := range after {
		if archive.ID == note.ID {
			return note, nil
		}
	}
	return nil, &ConsistencyError{Name: info.Name}
}

// UpdateArchive mirrors UpdateNote with the discriminator check
// inverted: the target must be an archive.
func (s *Service) UpdateArchive(ctx context.Context, id string, name, text *string, tags []string) (*torrow.Note, error) {
	archive, err := s.GetArchive(ctx, id)
	if err != nil {
		return nil, err
	}
	applyFields(archive, name, text, tags)
	if _, err := s.store.UpdateNote(ctx, archive); err != nil {
		return nil, err
	}
	return archive, nil
}

// DeleteArchive deletes an archive, returning its pre-deletion
// snapshot. With cascade set, the remote store also deletes the member
// notes; the cascade is a server-side operation, not orchestrated here.
func (s *Service) DeleteArchive(ctx context.Context, id string, cascade bool) (*torrow.Note, error) {
	archive, err := s.GetArchive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteNote(ctx, id, cascade); err != nil {
		return nil, err
	}
	return archive, nil
}

// GetArchives lists the members of the root context. A remote listing
// failure is wrapped as NotFoundError carrying the original message —
// the caller never gets a silently partial list.
func (s *Service) GetArchives(ctx context.Context) ([]torrow.Note, error) {
	root, err := s.RootContext(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.store.GetUserNotesByParentID(ctx, root.ID, archivePageSize, 0)
	if err != nil {
		return nil, &NotFoundError{Kind: KindArchive, Err: err}
	}
	return notesFromViews(views), nil
}

// FindArchiveByName looks an archive up by case-insensitive exact name
// match. Any failure — remote error or zero matches — yields nil: this
// is an optimistic lookup and "cannot determine" is handled the same
// as "does not exist" by every caller.
func (s *Service) FindArchiveByName(ctx context.Context, name string) *torrow.Note {
	archives, err := s.GetArchives(ctx)
	if err != nil {
		return nil
	}
	for i := range archives {
		if strings.EqualFold(archives[i].Name, name) {
			return &archives[i]
		}
	}
	return nil
}

// FindNoteByName looks a note up inside an archive via a bounded text
// search, matching the name case-insensitively. Same swallow-to-nil
// policy as FindArchiveByName.
func (s *Service) FindNoteByName(ctx context.Context, name, archiveID string) *torrow.Note {
	notes, err := s.SearchNotes(ctx, torrow.SearchParams{
		Text:    name,
		Take:    findPageSize,
		GroupID: archiveID,
	})
	if err != nil {
		return nil
	}
	for i := range notes {
		if strings.EqualFold(notes[i].Name, name) {
			return &notes[i]
		}
	}
	return nil
}

// NoteExistsInArchive reports whether a note with the given name exists
// in the archive, based on a bounded text search. Search failures map
// to false: when duplicate-prevention cannot be determined, creation is
// allowed rather than blocked.
func (s *Service) NoteExistsInArchive(ctx context.Context, name, archiveID string) bool {
	notes, err := s.SearchNotes(ctx, torrow.SearchParams{
		Text:    name,
		Take:    existsPageSize,
		GroupID: archiveID,
	})
	if err != nil {
		return false
	}
	for i := range notes {
		if strings.EqualFold(notes[i].Name, name) {
			return true
		}
	}
	return false
}

// RootContext finds or creates the hidden root context and memoizes it
// for the life of this instance, so repeated calls cost no remote round
// trips. The lock is held across the remote calls to keep a session
// from racing itself into two root contexts.
func (s *Service) RootContext(ctx context.Context) (*torrow.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rootContext != nil {
		return s.rootContext, nil
	}

	contexts, err := s.store.GetContexts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contexts {
		if contexts[i].Name == RootContextName {
			s.rootContext = &contexts[i]
			return s.rootContext, nil
		}
	}

	created, err := s.store.CreateContext(ctx, RootContextName)
	if err != nil {
		return nil, err
	}
	s.rootContext = created
	return s.rootContext, nil
}

// applyFields copies the provided (non-nil / non-empty) fields onto the
// record, leaving everything else as fetched.
func applyFields(note *torrow.Note, name, text *string, tags []string) {
	if name != nil {
		note.Name = *name
	}
	if text != nil {
		note.Data = *text
	}
	if len(tags) > 0 {
		note.Tags = tags
	}
}

func notesFromViews(views []torrow.NoteView) []torrow.Note {
	notes := make([]torrow.Note, len(views))
	for i, view := range views {
		notes[i] = view.Note()
	}
	return notes
}
