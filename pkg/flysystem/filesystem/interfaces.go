package filesystem

import (
	"io"
	"io/fs"
)

// File is an open handle returned by FileSystem.OpenFile.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Name() string
	Fd() uintptr
	Stat() (fs.FileInfo, error)
	Truncate(size int64) error
}

// ReadFS defines the read side of the capability: every path is absolute.
type ReadFS interface {
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	// RealPath resolves symlinks and returns the absolute real path.
	RealPath(name string) (string, error)
	// Access checks the calling process' permission (AccessRead, AccessWrite) on name.
	Access(name string, mode uint32) error
}

// WriteFS defines the mutating side of the capability.
type WriteFS interface {
	MkdirAll(path string, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error
	Remove(name string) error
	Rename(oldpath, newpath string) error
	// Lock takes an exclusive advisory lock on f, released when f is closed.
	Lock(f File) error
}

// FileSystem combines read and write operations.
type FileSystem interface {
	ReadFS
	WriteFS
}
