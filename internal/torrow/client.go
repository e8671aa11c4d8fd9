// Package torrow is a thin, typed client for the Torrow REST API.
//
// It knows verbs, paths and payload shapes — nothing about archives,
// hierarchy or sessions. Those semantics live in internal/service.
// The client adds no retry or backoff policy; reliability decisions
// belong to the caller.
package torrow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBase is used when no explicit API base is configured.
const DefaultAPIBase = "https://torrow.net"

// APIError is a non-2xx response (or transport failure) from the API.
type APIError struct {
	StatusCode int // 0 when the request never reached the server
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("torrow api: %s", e.Message)
	}
	return fmt.Sprintf("torrow api: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to one Torrow account, identified by its bearer token.
type Client struct {
	httpClient *http.Client
	apiBase    string
	token      string
}

// NewClient creates a client for the given token and API base.
// The token may be supplied with or without the "Bearer " prefix.
func NewClient(token, apiBase string) (*Client, error) {
	normalized := NormalizeToken(token)
	if normalized == "" {
		return nil, errors.New("torrow token is required")
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    strings.TrimRight(apiBase, "/"),
		token:      normalized,
	}, nil
}

// NormalizeToken trims the token and ensures the "Bearer " prefix the
// Authorization header expects. Empty input stays empty.
func NormalizeToken(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || strings.HasPrefix(trimmed, "Bearer ") {
		return trimmed
	}
	return "Bearer " + trimmed
}

// createNoteRequest is the fixed body shape of POST /api/v1/notes.
// Tags are deliberately absent: they are attached via AddNoteToGroup.
type createNoteRequest struct {
	Name             string   `json:"name,omitempty"`
	Data             string   `json:"data,omitempty"`
	NoteType         string   `json:"noteType"`
	Discriminator    string   `json:"discriminator"`
	Files            []string `json:"files"`
	ImagePreviewSize string   `json:"imagePreviewSize"`
	PublicityType    string   `json:"publicityType"`
}

// CreateNote creates a note, optionally under parentID.
func (c *Client) CreateNote(ctx context.Context, info CreateNoteInfo, parentID string) (*Note, error) {
	noteType := info.NoteType
	if noteType == "" {
		noteType = "Text"
	}
	body := createNoteRequest{
		Name:             info.Name,
		Data:             info.Data,
		NoteType:         noteType,
		Discriminator:    "NoteItem",
		Files:            []string{},
		ImagePreviewSize: "Small",
		PublicityType:    "Link",
	}

	query := url.Values{}
	if parentID != "" {
		query.Set("parentId", parentID)
	}

	var note Note
	if err := c.do(ctx, http.MethodPost, "/api/v1/notes", query, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces the note record with the given one.
func (c *Client) UpdateNote(ctx context.Context, note *Note) (*Note, error) {
	var updated Note
	path := "/api/v1/notes/" + url.PathEscape(note.ID)
	if err := c.do(ctx, http.MethodPut, path, nil, note, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteNote deletes a note. With cascade set, the server also deletes
// the members of the note's group.
func (c *Client) DeleteNote(ctx context.Context, id string, cascade bool) error {
	query := url.Values{}
	if cascade {
		query.Set("cascade", "true")
	}
	return c.do(ctx, http.MethodDelete, "/api/v1/notes/"+url.PathEscape(id), query, nil, nil)
}

// GetNote fetches a single note by id.
func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodGet, "/api/v1/notes/"+url.PathEscape(id), nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// setGroupRequest is the fixed role matrix the original clients send
// when converting a note into a group. PublicReader inside
// rolesToSearchItems doubles as the archive discriminator.
type setGroupRequest struct {
	RolesToInclude         []string `json:"rolesToInclude"`
	RolesToReadItems       []string `json:"rolesToReadItems"`
	RolesToReadSubscribers []string `json:"rolesToReadSubscribers"`
	RolesToSearchItems     []string `json:"rolesToSearchItems"`
	RolesToSearchSubs      []string `json:"rolesToSearchSubscribers"`
	RolesToUpdateItems     []string `json:"rolesToUpdateItems"`
}

// SetNoteAsGroup converts a note into a group. The operation is
// idempotent on the server and has no inverse in this API surface.
func (c *Client) SetNoteAsGroup(ctx context.Context, id string) error {
	body := setGroupRequest{
		RolesToInclude:     []string{"Owner", "Manager"},
		RolesToReadItems:   []string{"Owner", "Editor", "Manager", "Reader", PublicReaderRole},
		RolesToSearchItems: []string{"Owner", "Editor", "Manager", "Reader", PublicReaderRole},
		RolesToUpdateItems: []string{"Owner", "Manager"},
	}
	return c.do(ctx, http.MethodPut, "/api/v1/notes/"+url.PathEscape(id)+"/group/set", nil, body, nil)
}

// groupUpdate is one entry of the PUT .../updategroups body.
type groupUpdate struct {
	GroupID string   `json:"groupId"`
	Include bool     `json:"include"`
	Tags    []string `json:"tags"`
}

// AddNoteToGroup links a note into a group, attaching group-scoped tags.
// The exposed API is additive-only: include is always true.
func (c *Client) AddNoteToGroup(ctx context.Context, noteID, parentID string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	query := url.Values{}
	query.Set("parentId", parentID)
	body := []groupUpdate{{GroupID: parentID, Include: true, Tags: tags}}
	return c.do(ctx, http.MethodPut, "/api/v1/notes/"+url.PathEscape(noteID)+"/updategroups", query, body, nil)
}

// SearchNotes runs a text search, optionally scoped to a group.
func (c *Client) SearchNotes(ctx context.Context, params SearchParams) ([]NoteView, error) {
	query := url.Values{}
	if params.Text != "" {
		query.Set("text", params.Text)
	}
	take := params.Take
	if take == 0 {
		take = 10
	}
	query.Set("take", strconv.Itoa(take))
	query.Set("skip", strconv.Itoa(params.Skip))
	if params.GroupID != "" {
		query.Set("groupIds", params.GroupID)
	}
	if len(params.Tags) > 0 {
		query.Set("tags", strings.Join(params.Tags, ","))
	}
	if params.Distance > 0 {
		query.Set("distance", strconv.Itoa(params.Distance))
	}

	var views []NoteView
	if err := c.do(ctx, http.MethodGet, "/api/v1/search/notes", query, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// GetUserNotesByParentID lists the user-visible members of a container.
func (c *Client) GetUserNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]NoteView, error) {
	return c.getViews(ctx, parentID, "user", take, skip)
}

// GetPinnedNotesByParentID lists the pinned members of a container.
func (c *Client) GetPinnedNotesByParentID(ctx context.Context, parentID string, take, skip int) ([]NoteView, error) {
	return c.getViews(ctx, parentID, "pinned", take, skip)
}

func (c *Client) getViews(ctx context.Context, parentID, view string, take, skip int) ([]NoteView, error) {
	if take == 0 {
		take = 10
	}
	query := url.Values{}
	query.Set("take", strconv.Itoa(take))
	query.Set("skip", strconv.Itoa(skip))

	var views []NoteView
	path := "/api/v1/notes/" + url.PathEscape(parentID) + "/views/" + view
	if err := c.do(ctx, http.MethodGet, path, query, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// CreateContext creates a new top-level container with the given name.
func (c *Client) CreateContext(ctx context.Context, name string) (*Context, error) {
	body := map[string]string{
		"name":          name,
		"discriminator": "ContextItem",
	}
	var created Context
	if err := c.do(ctx, http.MethodPost, "/api/v1/contexts", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetContexts lists the caller's personal contexts.
func (c *Client) GetContexts(ctx context.Context) ([]Context, error) {
	query := url.Values{}
	query.Set("take", "20")
	query.Set("skip", "0")
	query.Set("lmfrom", "1970-01-01T00:00:00.000Z")
	query.Set("includeDeleted", "false")
	query.Set("sort", "OrderDesc")

	var contexts []Context
	if err := c.do(ctx, http.MethodGet, "/api/v1/contexts/personallist", query, nil, &contexts); err != nil {
		return nil, err
	}
	return contexts, nil
}

// do performs one API round trip. body (when non-nil) is sent as JSON;
// out (when non-nil) receives the decoded response. Non-2xx responses
// become *APIError with the server message when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.apiBase + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage extracts the "message" field of an error payload,
// falling back to the HTTP status line.
func errorMessage(data []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}
