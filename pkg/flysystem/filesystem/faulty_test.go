package filesystem_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
)

func TestFaultyFileSystem(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("fails only the selected path", func(t *testing.T) {
		ffs := filesystem.NewFaultyFileSystem(nil)
		bad := filepath.Join(tempDir, "bad")
		ffs.Fail(filesystem.OpMkdir, bad)

		err := ffs.MkdirAll(bad, 0755)
		require.Error(t, err)
		assert.True(t, errors.Is(err, filesystem.ErrInjected))

		assert.NoError(t, ffs.MkdirAll(filepath.Join(tempDir, "good"), 0755))
	})

	t.Run("empty path fails everywhere", func(t *testing.T) {
		ffs := filesystem.NewFaultyFileSystem(nil).Fail(filesystem.OpChmod, "")
		assert.Error(t, ffs.Chmod(tempDir, 0755))

		ffs.Reset()
		assert.NoError(t, ffs.Chmod(tempDir, 0755))
	})

	t.Run("failing close still releases the handle", func(t *testing.T) {
		ffs := filesystem.NewFaultyFileSystem(nil).Fail(filesystem.OpClose, "")
		path := filepath.Join(tempDir, "close.txt")

		f, err := ffs.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
		require.NoError(t, err)
		assert.Equal(t, 1, ffs.OpenHandles())

		_, err = f.Write([]byte("data"))
		require.NoError(t, err)
		assert.Error(t, f.Close())
		assert.Equal(t, 0, ffs.OpenHandles())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("write and lock failures", func(t *testing.T) {
		ffs := filesystem.NewFaultyFileSystem(nil).
			FailFunc(filesystem.OpWrite, func(p string) bool { return strings.HasSuffix(p, ".ro") }).
			Fail(filesystem.OpLock, filepath.Join(tempDir, "locked.txt"))

		f, err := ffs.OpenFile(filepath.Join(tempDir, "x.ro"), os.O_WRONLY|os.O_CREATE, 0644)
		require.NoError(t, err)
		_, err = f.Write([]byte("x"))
		assert.Error(t, err)
		require.NoError(t, f.Close())

		f, err = ffs.OpenFile(filepath.Join(tempDir, "locked.txt"), os.O_WRONLY|os.O_CREATE, 0644)
		require.NoError(t, err)
		assert.Error(t, ffs.Lock(f))
		require.NoError(t, f.Close())

		f, err = ffs.OpenFile(filepath.Join(tempDir, "unlocked.txt"), os.O_WRONLY|os.O_CREATE, 0644)
		require.NoError(t, err)
		assert.NoError(t, ffs.Lock(f))
		require.NoError(t, f.Close())
	})
}
