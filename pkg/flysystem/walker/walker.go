// Package walker enumerates directory trees under an adapter root.
//
// Listing is single-level through the filesystem capability or recursive
// through fastwalk. Either way every entry passes two guards before it is
// classified: the link policy (symbolic links are skipped or abort the walk)
// and the readability check (Readable). Both guards abort the whole walk;
// nothing is skipped silently except links under core.LinksSkip.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/pathprefix"
)

// Entry is one file or directory found by a walk.
type Entry struct {
	Path      string
	AbsPath   string
	Type      core.EntryType
	Timestamp int64
	Size      int64
	Link      bool
}

// Metadata converts the entry to the caller-facing shape. Size is only set
// for files; visibility is never populated by listings.
func (e Entry) Metadata() core.Metadata {
	meta := core.Metadata{
		Path:      e.Path,
		Type:      e.Type,
		Timestamp: core.Int64(e.Timestamp),
	}
	if e.Type == core.TypeFile {
		meta.Size = core.Int64(e.Size)
	}
	return meta
}

// Walker lists directories below a prefix
type Walker struct {
	fsys     filesystem.ReadFS
	prefixer *pathprefix.Prefixer
	links    core.LinkHandling
	logger   zerolog.Logger
}

// Option configures a Walker
type Option func(*Walker)

// WithLogger sets the walker's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// New creates a Walker resolving relative directories with prefixer.
func New(fsys filesystem.ReadFS, prefixer *pathprefix.Prefixer, links core.LinkHandling, opts ...Option) *Walker {
	w := &Walker{
		fsys:     fsys,
		prefixer: prefixer,
		links:    links,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// List enumerates relDir. A missing directory (or a path that is not a
// directory) yields no entries and no error. Entries are sorted by path.
func (w *Walker) List(relDir string, recursive bool) ([]Entry, error) {
	return w.walk("listContents", relDir, recursive, false)
}

// Collect returns every descendant of relDir for recursive deletion.
// Under core.LinksSkip, links are included (flagged Link) so they can be
// unlinked; under core.LinksDisallow they abort the walk.
func (w *Walker) Collect(relDir string) ([]Entry, error) {
	return w.walk("deleteDir", relDir, true, true)
}

func (w *Walker) walk(op, relDir string, recursive, keepLinks bool) ([]Entry, error) {
	absDir := filepath.Clean(w.prefixer.Apply(relDir))

	info, err := w.fsys.Stat(absDir)
	if err != nil || !info.IsDir() {
		w.logger.Debug().Str("op", op).Str("path", relDir).Msg("directory not found, nothing to list")
		return []Entry{}, nil
	}

	var entries []Entry
	if recursive {
		entries, err = w.walkRecursive(op, absDir, keepLinks)
	} else {
		entries, err = w.walkFlat(op, absDir, keepLinks)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (w *Walker) walkFlat(op, absDir string, keepLinks bool) ([]Entry, error) {
	dirEntries, err := w.fsys.ReadDir(absDir)
	if err != nil {
		return nil, core.NewError(core.KindUnreadableFile, op, w.prefixer.Remove(absDir), err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		entry, keep, err := w.visit(op, filepath.Join(absDir, d.Name()), d, keepLinks)
		if err != nil {
			return nil, err
		}
		if keep {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (w *Walker) walkRecursive(op, absDir string, keepLinks bool) ([]Entry, error) {
	var (
		mu      sync.Mutex
		entries []Entry
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, absDir, func(path string, d fs.DirEntry, err error) error {
		path = filepath.Clean(path)
		if err != nil {
			return core.NewError(core.KindUnreadableFile, op, w.prefixer.Remove(path), err)
		}
		if path == absDir {
			return nil
		}

		entry, keep, err := w.visit(op, path, d, keepLinks)
		if err != nil {
			return err
		}
		if keep {
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		var classified *core.Error
		if errors.As(err, &classified) {
			return nil, classified
		}
		return nil, core.NewError(core.KindUnreadableFile, op, w.prefixer.Remove(absDir), err)
	}
	return entries, nil
}

// visit applies the link policy and the readability guard, then classifies.
func (w *Walker) visit(op, absPath string, d fs.DirEntry, keepLinks bool) (Entry, bool, error) {
	relPath := w.prefixer.Remove(absPath)

	if d.Type()&fs.ModeSymlink != 0 {
		if w.links == core.LinksDisallow {
			return Entry{}, false, core.NewError(core.KindNotSupported, op, relPath,
				fmt.Errorf("links are not supported, encountered link at %s", relPath))
		}
		if !keepLinks {
			w.logger.Debug().Str("op", op).Str("path", relPath).Msg("skipping link")
			return Entry{}, false, nil
		}
		return Entry{Path: relPath, AbsPath: absPath, Type: core.TypeFile, Link: true}, true, nil
	}

	desc := Describe(w.fsys, absPath)
	if !Readable(desc) {
		return Entry{}, false, core.NewError(core.KindUnreadableFile, op, relPath, desc.Err())
	}

	info, err := d.Info()
	if err != nil {
		return Entry{}, false, core.NewError(core.KindUnreadableFile, op, relPath, err)
	}

	entry := Entry{
		Path:      relPath,
		AbsPath:   absPath,
		Type:      core.KindOf(info.Mode()),
		Timestamp: info.ModTime().Unix(),
	}
	if entry.Type == core.TypeFile {
		entry.Size = info.Size()
	}
	return entry, true, nil
}
