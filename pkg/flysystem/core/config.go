package core

// Recognized Config keys
const (
	// OptionVisibility sets the visibility of the written file or created directory
	OptionVisibility = "visibility"
	// OptionDirectoryVisibility sets the visibility of parent directories
	// created implicitly by writes, copies and renames
	OptionDirectoryVisibility = "directory_visibility"
)

// Config is the per-call option map passed to write-like operations.
// Unknown keys are ignored.
type Config map[string]interface{}

// Get returns the value stored under key, or def when absent.
func (c Config) Get(key string, def interface{}) interface{} {
	if c == nil {
		return def
	}
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is set.
func (c Config) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c[key]
	return ok
}

// With returns a copy of c with key set to value.
func (c Config) With(key string, value interface{}) Config {
	out := make(Config, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}

// Visibility returns the visibility stored under key. The second result is
// false when the key is absent or does not hold a valid visibility.
func (c Config) Visibility(key string) (Visibility, bool) {
	switch v := c.Get(key, nil).(type) {
	case Visibility:
		parsed, err := ParseVisibility(string(v))
		return parsed, err == nil
	case string:
		parsed, err := ParseVisibility(v)
		return parsed, err == nil
	default:
		return "", false
	}
}
