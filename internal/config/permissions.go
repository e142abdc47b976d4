package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/SilverFire/flysystem/pkg/flysystem/visibility"
)

// permissionPair mirrors visibility.Pair with octal strings ("0640").
type permissionPair struct {
	Public  string `yaml:"public" toml:"public"`
	Private string `yaml:"private" toml:"private"`
}

type permissionFile struct {
	File permissionPair `yaml:"file" toml:"file"`
	Dir  permissionPair `yaml:"dir" toml:"dir"`
}

// LoadPermissions reads a permission table from a .yaml, .yml or .toml
// file. Modes are octal strings; omitted entries keep their defaults.
//
//	file:
//	  public: "0640"
//	  private: "0600"
//	dir:
//	  public: "0750"
func LoadPermissions(path string) (visibility.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return visibility.Table{}, fmt.Errorf("failed to read permissions: %w", err)
	}

	var pf permissionFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pf)
	case ".toml":
		err = toml.Unmarshal(data, &pf)
	default:
		return visibility.Table{}, fmt.Errorf("unsupported permissions format %q", ext)
	}
	if err != nil {
		return visibility.Table{}, fmt.Errorf("failed to parse permissions %s: %w", path, err)
	}

	return pf.table()
}

func (pf permissionFile) table() (visibility.Table, error) {
	var (
		t   visibility.Table
		err error
	)
	fields := []struct {
		name  string
		value string
		dst   *fs.FileMode
	}{
		{"file.public", pf.File.Public, &t.File.Public},
		{"file.private", pf.File.Private, &t.File.Private},
		{"dir.public", pf.Dir.Public, &t.Dir.Public},
		{"dir.private", pf.Dir.Private, &t.Dir.Private},
	}
	for _, f := range fields {
		if *f.dst, err = ParseMode(f.value); err != nil {
			return visibility.Table{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return t, nil
}

// ParseMode parses an octal permission string. Empty means unset (0).
func ParseMode(s string) (fs.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: %w", s, err)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("invalid mode %q: only permission bits are allowed", s)
	}
	return fs.FileMode(v), nil
}
