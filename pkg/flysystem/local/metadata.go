package local

import (
	"fmt"
	"os"
	"time"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/mimedetect"
)

// --- Metadata ---

// GetMetadata returns path, type and timestamp for the entry at path, plus
// size for files. Links are never followed: under core.LinksDisallow they
// fail with core.KindNotSupported, under core.LinksSkip as not found.
func (a *Adapter) GetMetadata(path string) (meta core.Metadata, err error) {
	defer a.observe("getMetadata", path, time.Now(), &err)

	rel, abs, err := a.resolve("getMetadata", path)
	if err != nil {
		return core.Metadata{}, err
	}
	info, err := a.stat("getMetadata", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}

	meta = core.Metadata{
		Path:      rel,
		Type:      core.KindOf(info.Mode()),
		Timestamp: core.Int64(info.ModTime().Unix()),
	}
	if meta.Type == core.TypeFile {
		meta.Size = core.Int64(info.Size())
	}
	return meta, nil
}

// GetSize returns the size of the file at path.
func (a *Adapter) GetSize(path string) (meta core.Metadata, err error) {
	defer a.observe("getSize", path, time.Now(), &err)

	rel, abs, err := a.resolve("getSize", path)
	if err != nil {
		return core.Metadata{}, err
	}
	info, err := a.stat("getSize", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}
	if info.IsDir() {
		return core.Metadata{}, core.Failed("getSize", rel, ErrIsDirectory)
	}
	return core.Metadata{Path: rel, Type: core.TypeFile, Size: core.Int64(info.Size())}, nil
}

// GetTimestamp returns the modification time of path in Unix seconds.
func (a *Adapter) GetTimestamp(path string) (meta core.Metadata, err error) {
	defer a.observe("getTimestamp", path, time.Now(), &err)

	rel, abs, err := a.resolve("getTimestamp", path)
	if err != nil {
		return core.Metadata{}, err
	}
	info, err := a.stat("getTimestamp", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}
	return core.Metadata{
		Path:      rel,
		Type:      core.KindOf(info.Mode()),
		Timestamp: core.Int64(info.ModTime().Unix()),
	}, nil
}

// GetMimetype detects the media type of the file at path from its first
// bytes, falling back to the extension.
func (a *Adapter) GetMimetype(path string) (meta core.Metadata, err error) {
	defer a.observe("getMimetype", path, time.Now(), &err)

	rel, abs, err := a.resolve("getMimetype", path)
	if err != nil {
		return core.Metadata{}, err
	}
	info, err := a.stat("getMimetype", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}
	if info.IsDir() {
		return core.Metadata{}, core.Failed("getMimetype", rel, ErrIsDirectory)
	}

	f, err := a.fsys.OpenFile(abs, os.O_RDONLY, 0)
	if err != nil {
		return core.Metadata{}, core.Failed("getMimetype", rel, err)
	}
	sample, err := mimedetect.ReadSample(f)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close handle: %w", closeErr)
	}
	if err != nil {
		return core.Metadata{}, core.Failed("getMimetype", rel, err)
	}

	return core.Metadata{
		Path:     rel,
		Type:     core.TypeFile,
		Mimetype: a.detector.Detect(rel, sample),
	}, nil
}

// --- Visibility ---

// GetVisibility maps the permission bits of path to a visibility. Bits
// outside the table report the adapter's unknown visibility.
func (a *Adapter) GetVisibility(path string) (meta core.Metadata, err error) {
	defer a.observe("getVisibility", path, time.Now(), &err)

	rel, abs, err := a.resolve("getVisibility", path)
	if err != nil {
		return core.Metadata{}, err
	}
	info, err := a.stat("getVisibility", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}

	kind := core.KindOf(info.Mode())
	return core.Metadata{
		Path:       rel,
		Type:       kind,
		Visibility: a.converter.VisibilityFor(kind, info.Mode()),
	}, nil
}

// SetVisibility changes the permission bits of path to those of v.
func (a *Adapter) SetVisibility(path string, v core.Visibility) (meta core.Metadata, err error) {
	defer a.observe("setVisibility", path, time.Now(), &err)

	rel, abs, err := a.resolve("setVisibility", path)
	if err != nil {
		return core.Metadata{}, err
	}
	if _, err := core.ParseVisibility(string(v)); err != nil {
		return core.Metadata{}, core.Failed("setVisibility", rel, err)
	}
	info, err := a.stat("setVisibility", rel, abs)
	if err != nil {
		return core.Metadata{}, err
	}

	kind := core.KindOf(info.Mode())
	if err := a.converter.Apply(a.fsys, abs, kind, v); err != nil {
		return core.Metadata{}, core.Failed("setVisibility", rel, err)
	}
	return core.Metadata{Path: rel, Type: kind, Visibility: v}, nil
}
