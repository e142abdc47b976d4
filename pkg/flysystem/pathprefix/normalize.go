package pathprefix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathEscapesRoot is returned when a relative path climbs above the root.
var ErrPathEscapesRoot = errors.New("path escapes root")

// Normalize cleans a caller-supplied relative path: both separators become
// "/", empty and "." segments are dropped and ".." segments are resolved.
// A ".." with nothing left to pop fails with ErrPathEscapesRoot. The root
// itself normalizes to "".
func Normalize(path string) (string, error) {
	segments := strings.Split(strings.ReplaceAll(path, `\`, "/"), "/")
	parts := make([]string, 0, len(segments))

	for _, segment := range segments {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(parts) == 0 {
				return "", fmt.Errorf("%w: %q", ErrPathEscapesRoot, path)
			}
			parts = parts[:len(parts)-1]
		default:
			parts = append(parts, segment)
		}
	}

	return strings.Join(parts, "/"), nil
}
