package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Access modes accepted by ReadFS.Access
const (
	AccessRead  uint32 = unix.R_OK
	AccessWrite uint32 = unix.W_OK
)

// OSFileSystem implements FileSystem with direct syscalls on absolute paths.
// Root confinement is the caller's job; see pathprefix.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS-backed filesystem
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// OpenFile implements ReadFS
func (OSFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		// keep the interface value nil, not a typed nil *os.File
		return nil, err
	}
	return f, nil
}

// Stat implements ReadFS
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Lstat implements ReadFS
func (OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// ReadDir implements ReadFS
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// RealPath implements ReadFS
func (OSFileSystem) RealPath(name string) (string, error) {
	resolved, err := filepath.EvalSymlinks(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// Access implements ReadFS
func (OSFileSystem) Access(name string, mode uint32) error {
	if err := unix.Access(name, mode); err != nil {
		return &fs.PathError{Op: "access", Path: name, Err: err}
	}
	return nil
}

// MkdirAll implements WriteFS
func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Chmod implements WriteFS
func (OSFileSystem) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

// Remove implements WriteFS. Symbolic links are removed, never followed.
func (OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// Rename implements WriteFS
func (OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Lock implements WriteFS
func (OSFileSystem) Lock(f File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return &fs.PathError{Op: "flock", Path: f.Name(), Err: err}
	}
	return nil
}
