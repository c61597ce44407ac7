package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultVersion = "1.0.0"

// Manifest is the theme's own metadata, read from theme.toml.
type Manifest struct {
	Name       string `toml:"name"`
	Version    string `toml:"version"`
	TextDomain string `toml:"text_domain"`
	Author     string `toml:"author"`
}

// LoadManifest reads the theme manifest. A missing file yields the defaults.
func LoadManifest(path string) (Manifest, error) {
	m := Manifest{Name: "Startup WP", Version: defaultVersion, TextDomain: "startup_wp"}
	if path == "" {
		return m, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return m, fmt.Errorf("failed to decode theme manifest %s: %w", path, err)
	}
	if m.Version == "" {
		m.Version = defaultVersion
	}
	return m, nil
}
