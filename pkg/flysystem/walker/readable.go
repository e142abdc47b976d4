package walker

import (
	"github.com/SilverFire/flysystem/pkg/flysystem/filesystem"
)

// Descriptor captures what the walker learned about an entry before
// classifying it.
type Descriptor struct {
	Path        string
	RealPath    string
	RealPathErr error
	AccessErr   error
}

// Readable reports whether an entry may be classified: its real path must
// resolve and the process must be allowed to read it.
func Readable(d Descriptor) bool {
	return d.RealPathErr == nil && d.RealPath != "" && d.AccessErr == nil
}

// Describe probes absPath through fsys.
func Describe(fsys filesystem.ReadFS, absPath string) Descriptor {
	d := Descriptor{Path: absPath}
	d.RealPath, d.RealPathErr = fsys.RealPath(absPath)
	d.AccessErr = fsys.Access(absPath, filesystem.AccessRead)
	return d
}

// Err returns the first probe error, for reporting.
func (d Descriptor) Err() error {
	if d.RealPathErr != nil {
		return d.RealPathErr
	}
	return d.AccessErr
}
