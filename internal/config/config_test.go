package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		m, err := LoadManifest(filepath.Join(t.TempDir(), "theme.toml"))
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", m.Version)
		assert.Equal(t, "startup_wp", m.TextDomain)
	})

	t.Run("reads version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.toml")
		require.NoError(t, os.WriteFile(path, []byte("name = \"Startup\"\nversion = \"2.3.1\"\n"), 0o644))

		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, "Startup", m.Name)
		assert.Equal(t, "2.3.1", m.Version)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "theme.toml")
		require.NoError(t, os.WriteFile(path, []byte("version = "), 0o644))

		_, err := LoadManifest(path)
		assert.Error(t, err)
	})
}

func TestNewTheme(t *testing.T) {
	th := NewTheme(Config{BaseURL: "https://example.com/"}, Manifest{Version: "1.0.0"})
	assert.Equal(t, "https://example.com/css", th.CSSDir)
	assert.Equal(t, "https://example.com/js", th.JSDir)
	assert.Equal(t, "https://example.com/img", th.ImgDir)
	assert.Equal(t, "https://example.com/style.css", th.StylesheetURI)
	assert.Equal(t, 640, th.ContentWidth)
	assert.False(t, th.RTL())

	th = NewTheme(Config{ContentWidth: 800, TextDirection: "RTL"}, Manifest{})
	assert.Equal(t, 800, th.ContentWidth)
	assert.True(t, th.RTL())
}
