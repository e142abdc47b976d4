package local

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/mimedetect"
)

// --- Write operations ---

// Write creates or replaces the file at path with contents. Missing parent
// directories are created with the "directory_visibility" from cfg. The
// result carries path, type, size and contents, plus visibility when cfg
// sets one.
func (a *Adapter) Write(path string, contents []byte, cfg core.Config) (meta core.Metadata, err error) {
	defer a.observe("write", path, time.Now(), &err)

	rel, abs, err := a.resolve("write", path)
	if err != nil {
		return core.Metadata{}, err
	}
	size, v, explicit, err := a.writeFile("write", rel, abs, bytes.NewReader(contents), cfg)
	if err != nil {
		return core.Metadata{}, err
	}

	meta = core.Metadata{
		Path:     rel,
		Type:     core.TypeFile,
		Size:     core.Int64(size),
		Contents: contents,
	}
	if explicit {
		meta.Visibility = v
	}
	return meta, nil
}

// Update replaces the file at path like Write and also reports its mimetype.
func (a *Adapter) Update(path string, contents []byte, cfg core.Config) (meta core.Metadata, err error) {
	defer a.observe("update", path, time.Now(), &err)

	rel, abs, err := a.resolve("update", path)
	if err != nil {
		return core.Metadata{}, err
	}
	size, v, explicit, err := a.writeFile("update", rel, abs, bytes.NewReader(contents), cfg)
	if err != nil {
		return core.Metadata{}, err
	}

	sample := contents
	if len(sample) > mimedetect.SampleSize {
		sample = sample[:mimedetect.SampleSize]
	}
	meta = core.Metadata{
		Path:     rel,
		Type:     core.TypeFile,
		Size:     core.Int64(size),
		Contents: contents,
		Mimetype: a.detector.Detect(rel, sample),
	}
	if explicit {
		meta.Visibility = v
	}
	return meta, nil
}

// WriteStream copies r into the file at path. The caller keeps ownership of
// r; it is never closed here.
func (a *Adapter) WriteStream(path string, r io.Reader, cfg core.Config) (meta core.Metadata, err error) {
	defer a.observe("writeStream", path, time.Now(), &err)
	return a.stream("writeStream", path, r, cfg)
}

// UpdateStream is WriteStream for an existing file.
func (a *Adapter) UpdateStream(path string, r io.Reader, cfg core.Config) (meta core.Metadata, err error) {
	defer a.observe("updateStream", path, time.Now(), &err)
	return a.stream("updateStream", path, r, cfg)
}

func (a *Adapter) stream(op, path string, r io.Reader, cfg core.Config) (core.Metadata, error) {
	rel, abs, err := a.resolve(op, path)
	if err != nil {
		return core.Metadata{}, err
	}
	if r == nil {
		return core.Metadata{}, core.Failed(op, rel, ErrNilStream)
	}

	size, v, explicit, err := a.writeFile(op, rel, abs, r, cfg)
	if err != nil {
		return core.Metadata{}, err
	}

	meta := core.Metadata{
		Path: rel,
		Type: core.TypeFile,
		Size: core.Int64(size),
	}
	if explicit {
		meta.Visibility = v
	}
	return meta, nil
}

// writeFile is shared by every write operation. It returns the number of
// bytes written and the file visibility, with explicit reporting whether cfg
// named it. The handle is closed before returning on every path, and a
// failing close fails the write.
func (a *Adapter) writeFile(op, rel, abs string, r io.Reader, cfg core.Config) (int64, core.Visibility, bool, error) {
	dirVis, _ := a.visibilityFrom(cfg, core.OptionDirectoryVisibility)
	if err := a.ensureDirectory(filepath.Dir(abs), dirVis); err != nil {
		return 0, "", false, core.Failed(op, rel, fmt.Errorf("failed to create parent directory: %w", err))
	}

	v, explicit := a.visibilityFrom(cfg, core.OptionVisibility)
	f, err := a.fsys.OpenFile(abs, os.O_WRONLY|os.O_CREATE, a.converter.PermissionsFor(core.TypeFile, v))
	if err != nil {
		return 0, "", false, core.Failed(op, rel, err)
	}

	n, err := a.fill(f, r)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close handle: %w", closeErr)
	}
	if err != nil {
		return 0, "", false, core.Failed(op, rel, err)
	}
	a.metrics.AddWritten(n)

	if explicit {
		if err := a.converter.Apply(a.fsys, abs, core.TypeFile, v); err != nil {
			return 0, "", false, core.Failed(op, rel, err)
		}
	}
	return n, v, explicit, nil
}

// fill locks f when configured, truncates it and copies r in.
func (a *Adapter) fill(f filesystem.File, r io.Reader) (int64, error) {
	if a.lock == core.LockExclusive {
		if err := a.fsys.Lock(f); err != nil {
			return 0, fmt.Errorf("failed to lock: %w", err)
		}
	}
	if err := f.Truncate(0); err != nil {
		return 0, fmt.Errorf("failed to truncate: %w", err)
	}
	return io.Copy(f, r)
}
