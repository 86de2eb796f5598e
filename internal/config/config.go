// Package config loads the experimental-feature-flag record from an
// on-disk TOML file, merged with CLI flag overrides.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Features is the small record of booleans naming which experimental
// features are enabled for a compilation.
type Features struct {
	Features map[string]bool `toml:"features"`
}

// Load parses path as TOML into a Features record. A missing file is not
// an error — it simply yields the zero value (every flag defaulting to
// off), since --config is optional.
func Load(path string) (Features, error) {
	if path == "" {
		return Features{Features: map[string]bool{}}, nil
	}
	var f Features
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Features{Features: map[string]bool{}}, nil
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Features{}, err
	}
	if f.Features == nil {
		f.Features = map[string]bool{}
	}
	return f, nil
}

// Merge applies CLI overrides (enable takes precedence over disable, both
// take precedence over the file) onto f and returns the result.
func (f Features) Merge(enable, disable []string) Features {
	out := Features{Features: make(map[string]bool, len(f.Features))}
	for k, v := range f.Features {
		out.Features[k] = v
	}
	for _, name := range disable {
		out.Features[name] = false
	}
	for _, name := range enable {
		out.Features[name] = true
	}
	return out
}

// Enabled reports whether name is on.
func (f Features) Enabled(name string) bool {
	return f.Features[name]
}
