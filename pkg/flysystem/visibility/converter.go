package visibility

import (
	"fmt"
	"io/fs"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
)

// --- Default Values ---

const (
	// DefaultFilePublic is the public file permission (0644).
	DefaultFilePublic fs.FileMode = 0644
	// DefaultFilePrivate is the private file permission (0600).
	DefaultFilePrivate fs.FileMode = 0600
	// DefaultDirPublic is the public directory permission (0755).
	DefaultDirPublic fs.FileMode = 0755
	// DefaultDirPrivate is the private directory permission (0700).
	DefaultDirPrivate fs.FileMode = 0700
)

// Pair holds the permission bits of one entry kind
type Pair struct {
	Public  fs.FileMode `json:"public" yaml:"public" toml:"public"`
	Private fs.FileMode `json:"private" yaml:"private" toml:"private"`
}

// Table maps each entry kind to its permission pair
type Table struct {
	File Pair `json:"file" yaml:"file" toml:"file"`
	Dir  Pair `json:"dir" yaml:"dir" toml:"dir"`
}

// DefaultTable returns 0644/0600 for files and 0755/0700 for directories.
func DefaultTable() Table {
	return Table{
		File: Pair{Public: DefaultFilePublic, Private: DefaultFilePrivate},
		Dir:  Pair{Public: DefaultDirPublic, Private: DefaultDirPrivate},
	}
}

// Merge returns t with every zero entry replaced by the default.
func (t Table) Merge() Table {
	def := DefaultTable()
	if t.File.Public == 0 {
		t.File.Public = def.File.Public
	}
	if t.File.Private == 0 {
		t.File.Private = def.File.Private
	}
	if t.Dir.Public == 0 {
		t.Dir.Public = def.Dir.Public
	}
	if t.Dir.Private == 0 {
		t.Dir.Private = def.Dir.Private
	}
	return t
}

// Converter translates visibilities to permission bits and back
type Converter struct {
	table   Table
	unknown core.Visibility
}

// Option configures a Converter
type Option func(*Converter)

// WithUnknownVisibility sets what VisibilityFor reports for bits that match
// no table entry. The default is public.
func WithUnknownVisibility(v core.Visibility) Option {
	return func(c *Converter) {
		c.unknown = v
	}
}

// NewConverter creates a Converter; zero entries of table fall back to defaults.
func NewConverter(table Table, opts ...Option) *Converter {
	c := &Converter{
		table:   table.Merge(),
		unknown: core.VisibilityPublic,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the effective permission table
func (c *Converter) Table() Table {
	return c.table
}

func (c *Converter) pair(kind core.EntryType) Pair {
	if kind == core.TypeDir {
		return c.table.Dir
	}
	return c.table.File
}

// PermissionsFor returns the permission bits for kind at visibility v.
func (c *Converter) PermissionsFor(kind core.EntryType, v core.Visibility) fs.FileMode {
	pair := c.pair(kind)
	if v == core.VisibilityPrivate {
		return pair.Private
	}
	return pair.Public
}

// VisibilityFor maps permission bits of kind back to a visibility.
func (c *Converter) VisibilityFor(kind core.EntryType, perm fs.FileMode) core.Visibility {
	pair := c.pair(kind)
	switch perm.Perm() {
	case pair.Public.Perm():
		return core.VisibilityPublic
	case pair.Private.Perm():
		return core.VisibilityPrivate
	default:
		return c.unknown
	}
}

// Apply changes the mode of absPath to the bits for kind at visibility v.
// The chmod error is returned unclassified; callers own the op and path.
func (c *Converter) Apply(fsys filesystem.WriteFS, absPath string, kind core.EntryType, v core.Visibility) error {
	perm := c.PermissionsFor(kind, v)
	if err := fsys.Chmod(absPath, perm); err != nil {
		return fmt.Errorf("chmod %#o: %w", perm, err)
	}
	return nil
}
