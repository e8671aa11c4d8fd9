package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/torrowlabs/torrow-mcp/internal/service"
	"github.com/torrowlabs/torrow-mcp/internal/session"
	"github.com/torrowlabs/torrow-mcp/internal/torrow"
)

// fakeStore is a minimal in-memory service.Store for resource tests.
type fakeStore struct {
	notes    map[string]*torrow.Note
	children map[string][]string
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notes:    make(map[string]*torrow.Note),
		children: make(map[string][]string),
	}
}

func (f *fakeStore) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) addArchive(name string) *torrow.Note {
	note := &torrow.Note{
		ID:        f.newID("arch"),
		Name:      name,
		GroupInfo: &torrow.GroupInfo{RolesToSearchItems: []string{torrow.PublicReaderRole}},
	}
	f.notes[note.ID] = note
	f.children["root-1"] = append(f.children["root-1"], note.ID)
	return note
}

func (f *fakeStore) addNote(archiveID, name, data string) *torrow.Note {
	note := &torrow.Note{ID: f.newID("note"), Name: name, Data: data}
	f.notes[note.ID] = note
	f.children[archiveID] = append(f.children[archiveID], note.ID)
	return note
}

func (f *fakeStore) CreateNote(ctx context.Context, info torrow.CreateNoteInfo, parentID string) (*torrow.Note, error) {
	note := &torrow.Note{ID: f.newID("note"), Name: info.Name, Data: info.Data}
	f.notes[note.ID] = note
	f.children[parentID] = append(f.children[parentID], note.ID)
	return note, nil
}

func (f *fakeStore) UpdateNote(ctx context.Context, note *torrow.Note) (*torrow.Note, error) {
	stored := *note
	f.notes[note.ID] = &stored
	return &stored, nil
}

func (f *fakeStore) DeleteNote(ctx context.Context, id string, cascade bool) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeStore) GetNote(ctx context.Context, id string) (*torrow.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, &torrow.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
	}
	copied := *note
	return &copied, nil
}

func (f *fakeStore) SetNoteAsGroup(ctx context.Context, id string) error { return nil }

func (f *fakeStore) AddNoteToGroup(ctx context.Context, noteID, parentID string, tags []string) error {
	return nil
}

func (f *fakeStore) view(id string) torrow.NoteView {
	note := f.notes[id]
	return torrow.NoteView{
		ItemObject: &torrow.ViewItemObject{ID: note.ID},
		Name:       note.Name,
		Data:       note.Data,
		Tags:       note.Tags,
		GroupInfo:  note.GroupInfo,
	}
}

func (f *fakeStore) SearchNotes(ctx context.Context, params torrow.SearchParams) ([]torrow.NoteView, error) {
	return nil, nil
}

func (f *fakeStore) GetUserNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]torrow.NoteView, error) {
	var views []torrow.NoteView
	for _, id := range f.children[parentID] {
		if _, ok := f.notes[id]; ok {
			views = append(views, f.view(id))
		}
	}
	return views, nil
}

func (f *fakeStore) GetPinnedNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]torrow.NoteView, error) {
	return f.GetUserNotesByParentID(ctx, parentID, take, skip)
}

func (f *fakeStore) GetContexts(ctx context.Context) ([]torrow.Context, error) {
	return []torrow.Context{{ID: "root-1", Name: service.RootContextName}}, nil
}

func (f *fakeStore) CreateContext(ctx context.Context, name string) (*torrow.Context, error) {
	return &torrow.Context{ID: f.newID("ctx"), Name: name}, nil
}

func newHandler(store *fakeStore) (*Handler, *session.Runtime) {
	rt := &session.Runtime{Service: service.New(store), Session: session.New()}
	m := session.NewManager(func(ctx context.Context) (*session.Runtime, error) {
		return rt, nil
	})
	return NewHandler(m), rt
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func contentText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("unexpected content type %T", contents[0])
	}
	return text.Text
}

func TestHandleArchivesListsAll(t *testing.T) {
	store := newFakeStore()
	store.addArchive("Recipes")
	store.addArchive("Work")
	h, _ := newHandler(store)

	contents, err := h.HandleArchives(context.Background(), readReq("torrow://archives"))
	if err != nil {
		t.Fatalf("HandleArchives: %v", err)
	}

	var payload []map[string]any
	if err := json.Unmarshal([]byte(contentText(t, contents)), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("got %d archives, want 2", len(payload))
	}
	if payload[0]["type"] != "archive" {
		t.Errorf("type = %v", payload[0]["type"])
	}
}

func TestHandleNoteRejectsArchiveID(t *testing.T) {
	store := newFakeStore()
	archive := store.addArchive("Recipes")
	h, _ := newHandler(store)

	contents, err := h.HandleNote(context.Background(), readReq("torrow://notes/"+archive.ID))
	if err != nil {
		t.Fatalf("HandleNote: %v", err)
	}
	if !strings.HasPrefix(contentText(t, contents), "Error:") {
		t.Errorf("expected an error payload, got %q", contentText(t, contents))
	}
}

func TestHandleArchiveNotesWithQuery(t *testing.T) {
	store := newFakeStore()
	archive := store.addArchive("Recipes")
	store.addNote(archive.ID, "Pasta", "boil water")
	h, _ := newHandler(store)

	uri := fmt.Sprintf("torrow://archives/%s/notes?limit=5&skip=0", archive.ID)
	contents, err := h.HandleArchiveNotes(context.Background(), readReq(uri))
	if err != nil {
		t.Fatalf("HandleArchiveNotes: %v", err)
	}

	var payload []map[string]any
	if err := json.Unmarshal([]byte(contentText(t, contents)), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload) != 1 || payload[0]["name"] != "Pasta" {
		t.Errorf("payload = %v", payload)
	}
}

func TestHandleArchivePinned(t *testing.T) {
	store := newFakeStore()
	archive := store.addArchive("Recipes")
	store.addNote(archive.ID, "Pasta", "boil water")
	h, _ := newHandler(store)

	uri := fmt.Sprintf("torrow://archives/%s/pinned", archive.ID)
	contents, err := h.HandleArchivePinned(context.Background(), readReq(uri))
	if err != nil {
		t.Fatalf("HandleArchivePinned: %v", err)
	}

	var payload []map[string]any
	if err := json.Unmarshal([]byte(contentText(t, contents)), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload) != 1 || payload[0]["name"] != "Pasta" {
		t.Errorf("payload = %v", payload)
	}
}

func TestHandleSessionSnapshot(t *testing.T) {
	h, rt := newHandler(newFakeStore())
	rt.Session.SetArchive("arch-1", "Recipes")

	contents, err := h.HandleSession(context.Background(), readReq("torrow://session"))
	if err != nil {
		t.Fatalf("HandleSession: %v", err)
	}

	var snap map[string]any
	if err := json.Unmarshal([]byte(contentText(t, contents)), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap["archiveName"] != "Recipes" {
		t.Errorf("snapshot = %v", snap)
	}
}

func TestListParams(t *testing.T) {
	tests := []struct {
		raw         string
		limit, skip int
	}{
		{"", 10, 0},
		{"limit=5", 5, 0},
		{"limit=5&skip=3", 5, 3},
		{"skip=7", 10, 7},
	}
	for _, tt := range tests {
		limit, skip := listParams(tt.raw)
		if limit != tt.limit || skip != tt.skip {
			t.Errorf("listParams(%q) = %d/%d, want %d/%d", tt.raw, limit, skip, tt.limit, tt.skip)
		}
	}
}
