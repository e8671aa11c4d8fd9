package service

import "fmt"

// Entity kinds used in error messages.
const (
	KindNote    = "note"
	KindArchive = "archive"
)

// NotFoundError means the remote store has no usable record for the
// request. When Err is set, the failure came from a remote listing call
// whose message is preserved for the caller.
type NotFoundError struct {
	Kind string
	ID   string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not list %ss: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// WrongKindError means the record exists but is the other kind:
// an archive was addressed as a note, or a plain note as an archive.
type WrongKindError struct {
	ID   string
	Want string // KindNote or KindArchive
}

func (e *WrongKindError) Error() string {
	if e.Want == KindArchive {
		return fmt.Sprintf("%q is a plain note, not an archive", e.ID)
	}
	return fmt.Sprintf("%q is an archive, not a note", e.ID)
}

// DuplicateNameError reports a creation-time name collision. Names are
// compared case-insensitively within their scope (the root context for
// archives, the owning archive for notes).
type DuplicateNameError struct {
	Name    string
	Archive string // empty for archive collisions
}

func (e *DuplicateNameError) Error() string {
	if e.Archive == "" {
		return fmt.Sprintf("archive named %q already exists", e.Name)
	}
	return fmt.Sprintf("note named %q already exists in archive %q", e.Name, e.Archive)
}

// QuotaExceededError reports the archive cardinality ceiling.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("archive limit reached (maximum %d)", e.Limit)
}

// ConsistencyError means a created archive did not show up when the
// archive list was re-read after creation.
type ConsistencyError struct {
	Name string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("archive %q was created but is not visible under the root context yet", e.Name)
}
