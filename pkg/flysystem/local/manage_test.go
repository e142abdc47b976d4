package local_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
	"github.com/SilverFire/flysystem/pkg/flysystem/local"
)

func TestRead(t *testing.T) {
	a, _ := newFaultyAdapter(t)
	put(t, a, "dir/file.txt", "contents")

	meta, err := a.Read("dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "dir/file.txt", meta.Path)
	assert.Equal(t, core.TypeFile, meta.Type)
	assert.Equal(t, "contents", string(meta.Contents))

	_, err = a.Read("missing.txt")
	assert.True(t, core.IsOperationFailed(err))

	_, err = a.Read("dir")
	assert.True(t, core.IsOperationFailed(err))
}

func TestReadStream(t *testing.T) {
	a, faulty := newFaultyAdapter(t)
	put(t, a, "file.txt", "streamed")

	meta, err := a.ReadStream("file.txt")
	require.NoError(t, err)
	require.NotNil(t, meta.Stream)
	assert.Equal(t, 1, faulty.OpenHandles())

	data, err := io.ReadAll(meta.Stream)
	require.NoError(t, err)
	assert.Equal(t, "streamed", string(data))
	require.NoError(t, meta.Stream.Close())

	t.Run("directory", func(t *testing.T) {
		put(t, a, "dir/file.txt", "x")
		_, err := a.ReadStream("dir")
		require.Error(t, err)
		assert.ErrorIs(t, err, local.ErrIsDirectory)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := a.ReadStream("missing.txt")
		assert.True(t, core.IsOperationFailed(err))
	})
}

func TestDelete(t *testing.T) {
	a := newAdapter(t)
	put(t, a, "dir/file.txt", "x")

	require.NoError(t, a.Delete("dir/file.txt"))
	assert.False(t, a.Has("dir/file.txt"))

	err := a.Delete("dir/file.txt")
	assert.True(t, core.IsOperationFailed(err))

	err = a.Delete("dir")
	assert.ErrorIs(t, err, local.ErrIsDirectory)
	assert.True(t, a.Has("dir"))
}

func TestDeleteDir(t *testing.T) {
	t.Run("removes the whole tree", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "dir/a.txt", "x")
		put(t, a, "dir/sub/b.txt", "x")
		put(t, a, "dir/sub/deeper/c.txt", "x")
		put(t, a, "keep.txt", "x")
		_, err := a.CreateDir("dir/empty", nil)
		require.NoError(t, err)

		require.NoError(t, a.DeleteDir("dir"))
		assert.False(t, a.Has("dir"))
		assert.True(t, a.Has("keep.txt"))
	})

	t.Run("empty directory", func(t *testing.T) {
		a := newAdapter(t)
		_, err := a.CreateDir("empty", nil)
		require.NoError(t, err)

		require.NoError(t, a.DeleteDir("empty"))
		assert.False(t, a.Has("empty"))
	})

	t.Run("refuses the root", func(t *testing.T) {
		a := newAdapter(t)
		for _, p := range []string{"", "/", "a/.."} {
			err := a.DeleteDir(p)
			assert.ErrorIs(t, err, local.ErrRootDirectory, "path %q", p)
		}
		_, err := os.Stat(a.Root())
		assert.NoError(t, err)
	})

	t.Run("refuses files and missing paths", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "file.txt", "x")

		assert.ErrorIs(t, a.DeleteDir("file.txt"), local.ErrNotDirectory)
		assert.True(t, core.IsOperationFailed(a.DeleteDir("missing")))
	})

	t.Run("link under disallow aborts before removing", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "dir/file.txt", "x")
		require.NoError(t, os.Symlink(filepath.Join(a.Root(), "dir", "file.txt"), filepath.Join(a.Root(), "dir", "link")))

		err := a.DeleteDir("dir")
		require.Error(t, err)
		assert.True(t, core.IsNotSupported(err))
		assert.True(t, a.Has("dir/file.txt"))
	})

	t.Run("link under skip is unlinked, not followed", func(t *testing.T) {
		outside := tempRoot(t)
		target := filepath.Join(outside, "precious.txt")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

		a := newAdapter(t, local.WithLinkHandling(core.LinksSkip))
		put(t, a, "dir/file.txt", "x")
		require.NoError(t, os.Symlink(outside, filepath.Join(a.Root(), "dir", "linked-dir")))
		require.NoError(t, os.Symlink(target, filepath.Join(a.Root(), "dir", "linked-file")))

		require.NoError(t, a.DeleteDir("dir"))
		assert.False(t, a.Has("dir"))
		_, err := os.Stat(target)
		assert.NoError(t, err)
	})

	t.Run("unreadable entry aborts before removing", func(t *testing.T) {
		a, faulty := newFaultyAdapter(t)
		put(t, a, "dir/file.txt", "x")
		put(t, a, "dir/locked.txt", "x")
		faulty.Fail(filesystem.OpAccess, a.ApplyPathPrefix("dir/locked.txt"))

		err := a.DeleteDir("dir")
		require.Error(t, err)
		assert.True(t, core.IsUnreadableFile(err))
		assert.True(t, a.Has("dir/file.txt"))
	})

	t.Run("remove failure", func(t *testing.T) {
		a, faulty := newFaultyAdapter(t)
		put(t, a, "dir/file.txt", "x")
		faulty.Fail(filesystem.OpRemove, a.ApplyPathPrefix("dir/file.txt"))

		err := a.DeleteDir("dir")
		require.Error(t, err)
		assert.True(t, core.IsOperationFailed(err))
	})
}

func TestCreateDir(t *testing.T) {
	t.Run("nested with visibility", func(t *testing.T) {
		a := newAdapter(t)

		meta, err := a.CreateDir("a/b", core.Config{core.OptionVisibility: core.VisibilityPrivate})
		require.NoError(t, err)
		assert.Equal(t, core.Metadata{Path: "a/b", Type: core.TypeDir}, meta)
		assert.Equal(t, os.FileMode(0700), mode(t, filepath.Join(a.Root(), "a")))
		assert.Equal(t, os.FileMode(0700), mode(t, filepath.Join(a.Root(), "a", "b")))
	})

	t.Run("public by default", func(t *testing.T) {
		a := newAdapter(t)

		_, err := a.CreateDir("pub", nil)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), mode(t, filepath.Join(a.Root(), "pub")))
	})

	t.Run("name that looks falsy", func(t *testing.T) {
		a := newAdapter(t)

		meta, err := a.CreateDir("0", nil)
		require.NoError(t, err)
		assert.Equal(t, "0", meta.Path)
		assert.True(t, a.Has("0"))
	})

	t.Run("existing directory", func(t *testing.T) {
		a := newAdapter(t)
		_, err := a.CreateDir("dir", nil)
		require.NoError(t, err)

		_, err = a.CreateDir("dir", nil)
		assert.NoError(t, err)
	})

	t.Run("existing file", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "file", "x")

		_, err := a.CreateDir("file", nil)
		assert.ErrorIs(t, err, local.ErrNotDirectory)
	})

	t.Run("mkdir failure", func(t *testing.T) {
		a, faulty := newFaultyAdapter(t)
		faulty.Fail(filesystem.OpMkdir, "")

		_, err := a.CreateDir("dir", nil)
		require.Error(t, err)
		assert.True(t, core.IsOperationFailed(err))
	})
}

func TestCopy(t *testing.T) {
	a, faulty := newFaultyAdapter(t)
	src := put(t, a, "src.txt", "copied")
	require.NoError(t, os.Chmod(src, 0600))

	require.NoError(t, a.Copy("src.txt", "nested/dst.txt"))

	read, err := a.Read("nested/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "copied", string(read.Contents))
	assert.Equal(t, os.FileMode(0600), mode(t, filepath.Join(a.Root(), "nested", "dst.txt")))
	assert.True(t, a.Has("src.txt"))

	t.Run("missing source", func(t *testing.T) {
		assert.True(t, core.IsOperationFailed(a.Copy("missing.txt", "other.txt")))
		assert.False(t, a.Has("other.txt"))
	})

	t.Run("directory source", func(t *testing.T) {
		assert.ErrorIs(t, a.Copy("nested", "other"), local.ErrIsDirectory)
	})

	t.Run("onto itself", func(t *testing.T) {
		for _, dst := range []string{"src.txt", "./src.txt", "nested/../src.txt"} {
			err := a.Copy("src.txt", dst)
			require.Error(t, err, dst)
			assert.True(t, core.IsOperationFailed(err), dst)
			assert.ErrorIs(t, err, local.ErrSameFile, dst)
		}
		read, err := a.Read("src.txt")
		require.NoError(t, err)
		assert.Equal(t, "copied", string(read.Contents))
	})

	t.Run("onto a hard link of itself", func(t *testing.T) {
		require.NoError(t, os.Link(src, filepath.Join(a.Root(), "alias.txt")))

		assert.ErrorIs(t, a.Copy("src.txt", "alias.txt"), local.ErrSameFile)
		read, err := a.Read("alias.txt")
		require.NoError(t, err)
		assert.Equal(t, "copied", string(read.Contents))
	})

	t.Run("close failure", func(t *testing.T) {
		faulty.Fail(filesystem.OpClose, a.ApplyPathPrefix("broken.txt"))
		t.Cleanup(faulty.Reset)

		err := a.Copy("src.txt", "broken.txt")
		assert.True(t, core.IsOperationFailed(err))
	})
}

func TestRename(t *testing.T) {
	a := newAdapter(t)
	put(t, a, "old.txt", "moved")

	require.NoError(t, a.Rename("old.txt", "new/place/new.txt"))
	assert.False(t, a.Has("old.txt"))

	read, err := a.Read("new/place/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "moved", string(read.Contents))

	t.Run("directory", func(t *testing.T) {
		require.NoError(t, a.Rename("new", "renamed"))
		assert.True(t, a.Has("renamed/place/new.txt"))
	})

	t.Run("missing source", func(t *testing.T) {
		assert.True(t, core.IsOperationFailed(a.Rename("missing.txt", "x.txt")))
		assert.False(t, a.Has("x.txt"))
	})

	t.Run("root", func(t *testing.T) {
		assert.ErrorIs(t, a.Rename("", "elsewhere"), local.ErrRootDirectory)
	})

	t.Run("into its own subtree", func(t *testing.T) {
		err := a.Rename("renamed", "renamed/sub/inner")
		require.Error(t, err)
		assert.True(t, core.IsOperationFailed(err))
		assert.ErrorIs(t, err, local.ErrIntoItself)
		assert.False(t, a.Has("renamed/sub"))
		assert.True(t, a.Has("renamed/place/new.txt"))
	})

	t.Run("sibling sharing a name prefix", func(t *testing.T) {
		require.NoError(t, a.Rename("renamed", "renamed2/inner"))
		assert.True(t, a.Has("renamed2/inner/place/new.txt"))
	})
}

func TestHas(t *testing.T) {
	a, faulty := newFaultyAdapter(t)
	put(t, a, "dir/file.txt", "x")

	assert.True(t, a.Has("dir/file.txt"))
	assert.True(t, a.Has("dir"))
	assert.True(t, a.Has(""))
	assert.False(t, a.Has("missing"))
	assert.False(t, a.Has("dir/file.txt/below"))
	assert.Zero(t, faulty.OpenHandles())
}

func TestListContents(t *testing.T) {
	t.Run("recursive and flat", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "a/x.txt", "x")
		put(t, a, "a/y.txt", "yy")

		all, err := a.ListContents("", true)
		require.NoError(t, err)
		paths := make([]string, 0, len(all))
		for _, m := range all {
			paths = append(paths, m.Path)
		}
		if diff := cmp.Diff([]string{"a", "a/x.txt", "a/y.txt"}, paths); diff != "" {
			t.Errorf("recursive listing mismatch (-want +got):\n%s", diff)
		}

		top, err := a.ListContents("", false)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, "a", top[0].Path)
		assert.Equal(t, core.TypeDir, top[0].Type)
		assert.Nil(t, top[0].Size)

		inner, err := a.ListContents("a", false)
		require.NoError(t, err)
		require.Len(t, inner, 2)
		assert.Equal(t, "a/y.txt", inner[1].Path)
		require.NotNil(t, inner[1].Size)
		assert.Equal(t, int64(2), *inner[1].Size)
		assert.NotNil(t, inner[1].Timestamp)
		assert.Empty(t, inner[1].Visibility)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		a := newAdapter(t)

		list, err := a.ListContents("missing", true)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("links", func(t *testing.T) {
		a := newAdapter(t)
		put(t, a, "file.txt", "x")
		require.NoError(t, os.Symlink(filepath.Join(a.Root(), "file.txt"), filepath.Join(a.Root(), "link")))

		_, err := a.ListContents("", false)
		assert.True(t, core.IsNotSupported(err))

		skipping, err := local.New(a.Root(), local.WithLinkHandling(core.LinksSkip))
		require.NoError(t, err)
		list, err := skipping.ListContents("", true)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "file.txt", list[0].Path)
	})

	t.Run("unreadable entry", func(t *testing.T) {
		a, faulty := newFaultyAdapter(t)
		put(t, a, "dir/file.txt", "x")
		faulty.Fail(filesystem.OpRealPath, a.ApplyPathPrefix("dir/file.txt"))

		_, err := a.ListContents("", true)
		require.Error(t, err)
		assert.True(t, core.IsUnreadableFile(err))
	})
}
