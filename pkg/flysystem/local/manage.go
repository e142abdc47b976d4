package local

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/walker"
)

// --- Tree operations ---

// Delete removes the file (or link) at path. Directories are refused; use
// DeleteDir for those.
func (a *Adapter) Delete(path string) (err error) {
	defer a.observe("delete", path, time.Now(), &err)

	rel, abs, err := a.resolve("delete", path)
	if err != nil {
		return err
	}
	info, err := a.fsys.Lstat(abs)
	if err != nil {
		return core.Failed("delete", rel, err)
	}
	if info.IsDir() {
		return core.Failed("delete", rel, ErrIsDirectory)
	}
	if err := a.fsys.Remove(abs); err != nil {
		return core.Failed("delete", rel, err)
	}
	return nil
}

// DeleteDir removes the directory at path and everything below it. The
// contents are enumerated first, so an unreadable entry or a link under
// core.LinksDisallow aborts before anything is removed. Under
// core.LinksSkip links are removed themselves, never followed.
func (a *Adapter) DeleteDir(path string) (err error) {
	defer a.observe("deleteDir", path, time.Now(), &err)

	rel, abs, err := a.resolve("deleteDir", path)
	if err != nil {
		return err
	}
	if rel == "" {
		return core.Failed("deleteDir", rel, ErrRootDirectory)
	}
	info, err := a.fsys.Lstat(abs)
	if err != nil {
		return core.Failed("deleteDir", rel, err)
	}
	if !info.IsDir() {
		return core.Failed("deleteDir", rel, ErrNotDirectory)
	}

	entries, err := a.walker.Collect(rel)
	if err != nil {
		return err
	}
	order, err := walker.DeletionOrder(abs, entries)
	if err != nil {
		return core.Failed("deleteDir", rel, err)
	}

	for _, p := range order {
		if err := a.fsys.Remove(p); err != nil {
			return core.Failed("deleteDir", a.prefixer.Remove(p), err)
		}
		a.logger.Trace().Str("path", p).Msg("removed")
	}
	return nil
}

// CreateDir creates the directory at path, and any missing parents, with
// the permission of cfg's visibility. An existing directory is not an error.
func (a *Adapter) CreateDir(path string, cfg core.Config) (meta core.Metadata, err error) {
	defer a.observe("createDir", path, time.Now(), &err)

	rel, abs, err := a.resolve("createDir", path)
	if err != nil {
		return core.Metadata{}, err
	}
	v, _ := a.visibilityFrom(cfg, core.OptionVisibility)
	if err := a.ensureDirectory(abs, v); err != nil {
		return core.Metadata{}, core.Failed("createDir", rel, err)
	}
	return core.Metadata{Path: rel, Type: core.TypeDir}, nil
}

// Copy duplicates the file at path to newpath, replacing newpath if it
// exists. Missing parents of newpath are created.
func (a *Adapter) Copy(path, newpath string) (err error) {
	defer a.observe("copy", path, time.Now(), &err)

	rel, abs, err := a.resolve("copy", path)
	if err != nil {
		return err
	}
	newRel, newAbs, err := a.resolve("copy", newpath)
	if err != nil {
		return err
	}
	if rel == newRel {
		return core.Failed("copy", rel, ErrSameFile)
	}

	src, err := a.fsys.OpenFile(abs, os.O_RDONLY, 0)
	if err != nil {
		return core.Failed("copy", rel, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return core.Failed("copy", rel, err)
	}
	if info.IsDir() {
		return core.Failed("copy", rel, ErrIsDirectory)
	}
	// hard links and linked parents reach the source under another name
	if dstInfo, err := a.fsys.Stat(newAbs); err == nil && os.SameFile(info, dstInfo) {
		return core.Failed("copy", newRel, ErrSameFile)
	}
	if err := a.ensureDirectory(filepath.Dir(newAbs), a.defaultVis); err != nil {
		return core.Failed("copy", newRel, fmt.Errorf("failed to create parent directory: %w", err))
	}

	dst, err := a.fsys.OpenFile(newAbs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return core.Failed("copy", newRel, err)
	}
	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close handle: %w", closeErr)
	}
	if err != nil {
		return core.Failed("copy", newRel, err)
	}
	a.metrics.AddRead(n)
	a.metrics.AddWritten(n)
	return nil
}

// Rename moves path to newpath, creating missing parents of newpath.
func (a *Adapter) Rename(path, newpath string) (err error) {
	defer a.observe("rename", path, time.Now(), &err)

	rel, abs, err := a.resolve("rename", path)
	if err != nil {
		return err
	}
	newRel, newAbs, err := a.resolve("rename", newpath)
	if err != nil {
		return err
	}
	if rel == "" || newRel == "" {
		return core.Failed("rename", rel, ErrRootDirectory)
	}
	if strings.HasPrefix(newRel, rel+"/") {
		return core.Failed("rename", newRel, ErrIntoItself)
	}

	if _, err := a.fsys.Lstat(abs); err != nil {
		return core.Failed("rename", rel, err)
	}
	if err := a.ensureDirectory(filepath.Dir(newAbs), a.defaultVis); err != nil {
		return core.Failed("rename", newRel, fmt.Errorf("failed to create parent directory: %w", err))
	}
	if err := a.fsys.Rename(abs, newAbs); err != nil {
		return core.Failed("rename", rel, err)
	}
	return nil
}

// --- Queries ---

// Has reports whether anything exists at path. Links are followed.
func (a *Adapter) Has(path string) bool {
	var err error
	defer a.observe("has", path, time.Now(), &err)

	_, abs, err := a.resolve("has", path)
	if err != nil {
		return false
	}
	if _, statErr := a.fsys.Stat(abs); statErr != nil {
		// absence is an answer, not a failure
		if !errors.Is(statErr, fs.ErrNotExist) {
			err = core.Failed("has", path, statErr)
		}
		return false
	}
	return true
}

// ListContents lists the entries below directory, sorted by path. A missing
// directory lists as empty. Entries carry path, type and timestamp, and
// size for files.
func (a *Adapter) ListContents(directory string, recursive bool) (list []core.Metadata, err error) {
	defer a.observe("listContents", directory, time.Now(), &err)

	rel, _, err := a.resolve("listContents", directory)
	if err != nil {
		return nil, err
	}
	entries, err := a.walker.List(rel, recursive)
	if err != nil {
		return nil, err
	}

	list = make([]core.Metadata, 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry.Metadata())
	}
	return list, nil
}
