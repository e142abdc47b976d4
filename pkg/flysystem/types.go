package flysystem

import "github.com/SilverFire/flysystem/pkg/flysystem/core"

// --- Shared Types ---

// Metadata is defined in the core package
type Metadata = core.Metadata

// Config is defined in the core package
type Config = core.Config

// EntryType is defined in the core package
type EntryType = core.EntryType

// Visibility is defined in the core package
type Visibility = core.Visibility

// LockMode is defined in the core package
type LockMode = core.LockMode

// LinkHandling is defined in the core package
type LinkHandling = core.LinkHandling

// Error is defined in the core package
type Error = core.Error

const (
	// TypeFile is a regular file.
	TypeFile = core.TypeFile
	// TypeDir is a directory.
	TypeDir = core.TypeDir

	// VisibilityPublic maps to world-readable permissions.
	VisibilityPublic = core.VisibilityPublic
	// VisibilityPrivate maps to owner-only permissions.
	VisibilityPrivate = core.VisibilityPrivate

	// LockNone writes without locking.
	LockNone = core.LockNone
	// LockExclusive locks write handles exclusively.
	LockExclusive = core.LockExclusive

	// LinksDisallow aborts traversals that meet a symbolic link.
	LinksDisallow = core.LinksDisallow
	// LinksSkip omits symbolic links from traversals.
	LinksSkip = core.LinksSkip
)

// --- Version ---

// Version is the library version, overridden at build time by the CLI.
var Version = "dev"
