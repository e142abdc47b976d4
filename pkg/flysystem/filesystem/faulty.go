package filesystem

import (
	"errors"
	"io/fs"
	"sync"
)

// ErrInjected is the cause of every failure produced by FaultyFileSystem.
var ErrInjected = errors.New("injected failure")

// Op names an operation FaultyFileSystem can fail
type Op string

const (
	OpOpen     Op = "open"
	OpWrite    Op = "write"
	OpClose    Op = "close"
	OpChmod    Op = "chmod"
	OpMkdir    Op = "mkdir"
	OpRemove   Op = "remove"
	OpRename   Op = "rename"
	OpReadDir  Op = "readdir"
	OpRealPath Op = "realpath"
	OpAccess   Op = "access"
	OpLock     Op = "lock"
)

// FaultyFileSystem wraps a FileSystem and fails selected operations on
// selected paths. It also tracks open handles so tests can assert that
// every handle is released. Safe for concurrent use.
type FaultyFileSystem struct {
	FileSystem

	mu    sync.Mutex
	rules map[Op][]func(path string) bool
	open  int
}

// NewFaultyFileSystem wraps inner; a nil inner wraps the OS filesystem.
func NewFaultyFileSystem(inner FileSystem) *FaultyFileSystem {
	if inner == nil {
		inner = NewOSFileSystem()
	}
	return &FaultyFileSystem{
		FileSystem: inner,
		rules:      make(map[Op][]func(string) bool),
	}
}

// Fail makes op fail on path. An empty path fails op everywhere.
func (f *FaultyFileSystem) Fail(op Op, path string) *FaultyFileSystem {
	return f.FailFunc(op, func(p string) bool {
		return path == "" || p == path
	})
}

// FailFunc makes op fail on every path match accepts.
func (f *FaultyFileSystem) FailFunc(op Op, match func(path string) bool) *FaultyFileSystem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[op] = append(f.rules[op], match)
	return f
}

// Reset removes every rule.
func (f *FaultyFileSystem) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = make(map[Op][]func(string) bool)
}

// OpenHandles returns the number of handles opened and not yet closed.
func (f *FaultyFileSystem) OpenHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *FaultyFileSystem) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range f.rules[op] {
		if match(path) {
			return &fs.PathError{Op: string(op), Path: path, Err: ErrInjected}
		}
	}
	return nil
}

// OpenFile implements ReadFS
func (f *FaultyFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	file, err := f.FileSystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.open++
	f.mu.Unlock()
	return &faultyFile{File: file, owner: f}, nil
}

// ReadDir implements ReadFS
func (f *FaultyFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FileSystem.ReadDir(name)
}

// RealPath implements ReadFS
func (f *FaultyFileSystem) RealPath(name string) (string, error) {
	if err := f.check(OpRealPath, name); err != nil {
		return "", err
	}
	return f.FileSystem.RealPath(name)
}

// Access implements ReadFS
func (f *FaultyFileSystem) Access(name string, mode uint32) error {
	if err := f.check(OpAccess, name); err != nil {
		return err
	}
	return f.FileSystem.Access(name, mode)
}

// MkdirAll implements WriteFS
func (f *FaultyFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdir, path); err != nil {
		return err
	}
	return f.FileSystem.MkdirAll(path, perm)
}

// Chmod implements WriteFS
func (f *FaultyFileSystem) Chmod(name string, mode fs.FileMode) error {
	if err := f.check(OpChmod, name); err != nil {
		return err
	}
	return f.FileSystem.Chmod(name, mode)
}

// Remove implements WriteFS
func (f *FaultyFileSystem) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FileSystem.Remove(name)
}

// Rename implements WriteFS
func (f *FaultyFileSystem) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath); err != nil {
		return err
	}
	return f.FileSystem.Rename(oldpath, newpath)
}

// Lock implements WriteFS
func (f *FaultyFileSystem) Lock(file File) error {
	if err := f.check(OpLock, file.Name()); err != nil {
		return err
	}
	if ff, ok := file.(*faultyFile); ok {
		file = ff.File
	}
	return f.FileSystem.Lock(file)
}

// faultyFile fails writes and closes according to its owner's rules. A
// failing Close still releases the underlying handle.
type faultyFile struct {
	File
	owner  *FaultyFileSystem
	closed bool
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if err := ff.owner.check(OpWrite, ff.Name()); err != nil {
		return 0, err
	}
	return ff.File.Write(p)
}

func (ff *faultyFile) Close() error {
	err := ff.File.Close()
	if !ff.closed {
		ff.closed = true
		ff.owner.mu.Lock()
		ff.owner.open--
		ff.owner.mu.Unlock()
	}
	if injected := ff.owner.check(OpClose, ff.Name()); injected != nil {
		return injected
	}
	return err
}
