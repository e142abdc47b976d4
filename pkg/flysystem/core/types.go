package core

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// EntryType is the kind of a filesystem object exposed through the adapter
type EntryType string

const (
	// TypeFile is a regular file
	TypeFile EntryType = "file"
	// TypeDir is a directory
	TypeDir EntryType = "dir"
)

// String returns the string representation of the EntryType
func (t EntryType) String() string {
	return string(t)
}

// KindOf maps a file mode to an EntryType. Anything that is not a directory
// is treated as a file.
func KindOf(mode fs.FileMode) EntryType {
	if mode.IsDir() {
		return TypeDir
	}
	return TypeFile
}

// Visibility is the symbolic permission setting of an entry
type Visibility string

const (
	// VisibilityPublic maps to world-readable permissions
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate maps to owner-only permissions
	VisibilityPrivate Visibility = "private"
)

// String returns the string representation of the Visibility
func (v Visibility) String() string {
	return string(v)
}

// ParseVisibility parses "public" or "private" (case-insensitive).
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	default:
		return "", fmt.Errorf("invalid visibility %q: expected %q or %q", s, VisibilityPublic, VisibilityPrivate)
	}
}

// LockMode controls whether write handles take an exclusive advisory lock
type LockMode int

const (
	// LockNone writes without locking
	LockNone LockMode = iota
	// LockExclusive takes flock(LOCK_EX) on every write handle
	LockExclusive
)

// String returns the string representation of the LockMode
func (m LockMode) String() string {
	switch m {
	case LockNone:
		return "none"
	case LockExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// ParseLockMode parses "none" or "exclusive".
func ParseLockMode(s string) (LockMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return LockNone, nil
	case "exclusive", "ex":
		return LockExclusive, nil
	default:
		return LockNone, fmt.Errorf("invalid lock mode %q", s)
	}
}

// LinkHandling controls how symbolic links found during traversal are treated
type LinkHandling int

const (
	// LinksDisallow aborts any traversal that meets a symbolic link
	LinksDisallow LinkHandling = iota
	// LinksSkip omits links from listings and unlinks them during recursive deletes
	LinksSkip
)

// String returns the string representation of the LinkHandling
func (h LinkHandling) String() string {
	switch h {
	case LinksDisallow:
		return "disallow"
	case LinksSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseLinkHandling parses "disallow" or "skip".
func ParseLinkHandling(s string) (LinkHandling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disallow", "":
		return LinksDisallow, nil
	case "skip":
		return LinksSkip, nil
	default:
		return LinksDisallow, fmt.Errorf("invalid link handling %q", s)
	}
}

// Metadata is the result of every read or stat-like operation. Path and Type
// are always set; the remaining fields are only populated by the operations
// that produce them, and JSON encoding omits the ones left empty.
type Metadata struct {
	Path       string        `json:"path"`
	Type       EntryType     `json:"type"`
	Size       *int64        `json:"size,omitempty"`
	Timestamp  *int64        `json:"timestamp,omitempty"`
	Mimetype   string        `json:"mimetype,omitempty"`
	Visibility Visibility    `json:"visibility,omitempty"`
	Contents   []byte        `json:"contents,omitempty"`
	Stream     io.ReadCloser `json:"-"`
}

// Int64 returns a pointer to v, for filling optional Metadata fields.
func Int64(v int64) *int64 {
	return &v
}
