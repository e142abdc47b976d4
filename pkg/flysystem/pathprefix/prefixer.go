// Package pathprefix maps relative paths onto a root prefix and back.
//
// A Prefixer owns one prefix string terminated by exactly one separator.
// Apply builds native absolute paths (using the configured separator);
// Remove turns native paths back into "/"-separated relative paths. Both
// directions accept "/" and "\" in their input, so a Windows-style prefix
// such as `C:\some\dir\` strips correctly from paths built either way.
package pathprefix

import (
	"strings"
)

const separators = `\/`

// Prefixer applies and removes a root prefix
type Prefixer struct {
	prefix    string
	separator byte
}

// New creates a Prefixer for prefix using separator for built paths.
func New(prefix string, separator byte) *Prefixer {
	p := &Prefixer{separator: separator}
	p.SetPrefix(prefix)
	return p
}

// SetPrefix replaces the prefix. An empty prefix makes Apply and Remove act
// as identity; any other prefix is normalized to end with one separator.
func (p *Prefixer) SetPrefix(prefix string) {
	if prefix == "" {
		p.prefix = ""
		return
	}
	p.prefix = strings.TrimRight(prefix, separators) + string(p.separator)
}

// Prefix returns the normalized prefix
func (p *Prefixer) Prefix() string {
	return p.prefix
}

// Apply prepends the prefix to relative. Leading separators of relative are
// dropped; an empty relative yields the prefix itself.
func (p *Prefixer) Apply(relative string) string {
	path := p.prefix + strings.TrimLeft(relative, separators)
	if p.separator != '/' {
		path = strings.ReplaceAll(path, "/", string(p.separator))
	}
	return path
}

// Remove strips the prefix from absolute and returns a "/"-separated path.
// A path that does not start with the prefix is only separator-normalized.
// The prefix directory itself (with or without its trailing separator)
// yields "".
func (p *Prefixer) Remove(absolute string) string {
	if p.prefix == "" {
		return p.toSlash(absolute)
	}
	normalized := unify(absolute)
	prefix := unify(p.prefix)
	switch {
	case strings.HasPrefix(normalized, prefix):
		return p.toSlash(absolute[len(p.prefix):])
	case normalized == strings.TrimSuffix(prefix, "/"):
		return ""
	default:
		return p.toSlash(absolute)
	}
}

func (p *Prefixer) toSlash(path string) string {
	if p.separator == '/' {
		return path
	}
	return strings.ReplaceAll(path, string(p.separator), "/")
}

// unify maps both separators to "/" for comparison only.
func unify(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
