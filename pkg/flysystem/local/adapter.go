// Package local implements the filesystem adapter over the local disk.
//
// An Adapter is confined to one root directory, validated once by New.
// Every operation takes a path relative to that root, resolves it through
// a pathprefix.Prefixer and executes through a filesystem.FileSystem
// capability. Operations return (value, error); errors are *core.Error
// values and raw syscall errors are only ever reachable through Unwrap.
//
// Handles opened by an operation are closed on every exit path, and a
// failing Close turns an otherwise successful write into a failure.
package local

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/metrics"
	"github.com/SilverFire/flysystem/pkg/flysystem/mimedetect"
	"github.com/SilverFire/flysystem/pkg/flysystem/pathprefix"
	"github.com/SilverFire/flysystem/pkg/flysystem/visibility"
	"github.com/SilverFire/flysystem/pkg/flysystem/walker"
)

var (
	// ErrRootDirectory is the cause when an operation would remove or replace the root.
	ErrRootDirectory = errors.New("operation not permitted on the root directory")
	// ErrIsDirectory is the cause when a file operation targets a directory.
	ErrIsDirectory = errors.New("is a directory")
	// ErrNotDirectory is the cause when a directory operation targets something else.
	ErrNotDirectory = errors.New("not a directory")
	// ErrLinkSkipped is the cause when a stat-like call meets a link under core.LinksSkip.
	ErrLinkSkipped = errors.New("symbolic link skipped")
	// ErrNilStream is the cause when a stream write gets no source.
	ErrNilStream = errors.New("nil source stream")
	// ErrSameFile is the cause when a copy targets its own source.
	ErrSameFile = errors.New("source and destination are the same file")
	// ErrIntoItself is the cause when a directory would move below itself.
	ErrIntoItself = errors.New("cannot move a directory into itself")
)

// Adapter is the local filesystem adapter
type Adapter struct {
	root       string
	fsys       filesystem.FileSystem
	prefixer   *pathprefix.Prefixer
	converter  *visibility.Converter
	walker     *walker.Walker
	detector   mimedetect.Detector
	lock       core.LockMode
	links      core.LinkHandling
	defaultVis core.Visibility
	logger     zerolog.Logger
	metrics    *metrics.Recorder
}

// New validates root and returns an adapter confined to it. The root is
// created (with the public directory permission) when missing, resolved to
// its real path, and must be a writable directory. Any of these failing is
// a core.KindConfiguration error and no adapter is returned.
func New(root string, opts ...Option) (*Adapter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	converter := visibility.NewConverter(o.table, visibility.WithUnknownVisibility(o.unknown))

	resolved, err := ensureRoot(o.fsys, root, converter.PermissionsFor(core.TypeDir, core.VisibilityPublic))
	if err != nil {
		return nil, core.NewError(core.KindConfiguration, "new", root, err)
	}

	prefixer := pathprefix.New(resolved, filepath.Separator)
	a := &Adapter{
		root:       resolved,
		fsys:       o.fsys,
		prefixer:   prefixer,
		converter:  converter,
		walker:     walker.New(o.fsys, prefixer, o.links, walker.WithLogger(o.logger)),
		detector:   o.detector,
		lock:       o.lock,
		links:      o.links,
		defaultVis: o.defaultVis,
		logger:     o.logger,
		metrics:    o.metrics,
	}

	a.logger.Info().
		Str("root", resolved).
		Str("lock", o.lock.String()).
		Str("links", o.links.String()).
		Msg("local adapter initialized")

	return a, nil
}

func ensureRoot(fsys filesystem.FileSystem, root string, perm fs.FileMode) (string, error) {
	if root == "" {
		return "", errors.New("root path is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to make root absolute: %w", err)
	}

	if _, err := fsys.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		if err := fsys.MkdirAll(abs, perm); err != nil {
			return "", fmt.Errorf("impossible to create the root directory %q: %w", abs, err)
		}
	}

	resolved, err := fsys.RealPath(abs)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %q: %w", abs, err)
	}
	info, err := fsys.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to stat root %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q: %w", resolved, ErrNotDirectory)
	}
	if err := fsys.Access(resolved, filesystem.AccessWrite); err != nil {
		return "", fmt.Errorf("root %q is not writable: %w", resolved, err)
	}
	return resolved, nil
}

// Root returns the resolved absolute root
func (a *Adapter) Root() string {
	return a.root
}

// Prefixer exposes the path prefixer, e.g. to re-prefix in tests
func (a *Adapter) Prefixer() *pathprefix.Prefixer {
	return a.prefixer
}

// ApplyPathPrefix returns the absolute path of a relative one.
func (a *Adapter) ApplyPathPrefix(path string) string {
	return a.prefixer.Apply(path)
}

// RemovePathPrefix returns the relative path of an absolute one.
func (a *Adapter) RemovePathPrefix(path string) string {
	return a.prefixer.Remove(path)
}

// resolve normalizes a caller path and builds its absolute form.
func (a *Adapter) resolve(op, path string) (string, string, error) {
	rel, err := pathprefix.Normalize(path)
	if err != nil {
		return "", "", core.Failed(op, path, err)
	}
	return rel, a.prefixer.Apply(rel), nil
}

// ensureDirectory creates absDir and its missing ancestors, giving each
// created directory the exact permission of visibility v.
func (a *Adapter) ensureDirectory(absDir string, v core.Visibility) error {
	var missing []string
	for dir := filepath.Clean(absDir); ; {
		info, err := a.fsys.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		missing = append(missing, dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if len(missing) == 0 {
		return nil
	}

	perm := a.converter.PermissionsFor(core.TypeDir, v)
	if err := a.fsys.MkdirAll(absDir, perm); err != nil {
		return err
	}
	// MkdirAll is subject to the umask; set the exact bits top-down
	for i := len(missing) - 1; i >= 0; i-- {
		if err := a.fsys.Chmod(missing[i], perm); err != nil {
			return err
		}
	}
	return nil
}

// visibilityFrom returns the visibility stored under key, or the default.
func (a *Adapter) visibilityFrom(cfg core.Config, key string) (core.Visibility, bool) {
	if v, ok := cfg.Visibility(key); ok {
		return v, true
	}
	return a.defaultVis, false
}

// stat looks path up without following links and applies the link policy.
func (a *Adapter) stat(op, rel, abs string) (fs.FileInfo, error) {
	info, err := a.fsys.Lstat(abs)
	if err != nil {
		return nil, core.Failed(op, rel, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		if a.links == core.LinksDisallow {
			return nil, core.NewError(core.KindNotSupported, op, rel,
				fmt.Errorf("links are not supported, encountered link at %s", rel))
		}
		return nil, core.Failed(op, rel, ErrLinkSkipped)
	}
	return info, nil
}

// observe logs and records a finished operation.
func (a *Adapter) observe(op, path string, started time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	a.metrics.Observe(op, started, err)

	if err != nil {
		a.logger.Debug().Str("op", op).Str("path", path).Err(err).Msg("operation failed")
		return
	}
	a.logger.Debug().Str("op", op).Str("path", path).Dur("took", time.Since(started)).Msg("operation completed")
}
