package local

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
)

// --- Read operations ---

// Read returns the whole contents of the file at path.
func (a *Adapter) Read(path string) (meta core.Metadata, err error) {
	defer a.observe("read", path, time.Now(), &err)

	rel, abs, err := a.resolve("read", path)
	if err != nil {
		return core.Metadata{}, err
	}

	f, err := a.fsys.OpenFile(abs, os.O_RDONLY, 0)
	if err != nil {
		return core.Metadata{}, core.Failed("read", rel, err)
	}
	contents, err := io.ReadAll(f)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close handle: %w", closeErr)
	}
	if err != nil {
		return core.Metadata{}, core.Failed("read", rel, err)
	}
	a.metrics.AddRead(int64(len(contents)))

	return core.Metadata{
		Path:     rel,
		Type:     core.TypeFile,
		Contents: contents,
	}, nil
}

// ReadStream opens the file at path for reading. The returned Metadata's
// Stream belongs to the caller, who must close it.
func (a *Adapter) ReadStream(path string) (meta core.Metadata, err error) {
	defer a.observe("readStream", path, time.Now(), &err)

	rel, abs, err := a.resolve("readStream", path)
	if err != nil {
		return core.Metadata{}, err
	}

	f, err := a.fsys.OpenFile(abs, os.O_RDONLY, 0)
	if err != nil {
		return core.Metadata{}, core.Failed("readStream", rel, err)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		err = ErrIsDirectory
	}
	if err != nil {
		_ = f.Close()
		return core.Metadata{}, core.Failed("readStream", rel, err)
	}

	return core.Metadata{
		Path:   rel,
		Type:   core.TypeFile,
		Stream: f,
	}, nil
}
