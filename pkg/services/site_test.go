package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSiteConfigFormats(t *testing.T) {
	yml := "name: Friends XI e.V.\nfounded: \"2012\"\nnav:\n  - label: Home\n    url: /\n"
	toml := "name = \"Friends XI e.V.\"\nfounded = \"2012\"\n[[nav]]\nlabel = \"Home\"\nurl = \"/\"\n"
	js := `{"name":"Friends XI e.V.","founded":"2012","nav":[{"label":"Home","url":"/"}]}`

	for format, body := range map[string]string{"yaml": yml, "toml": toml, "json": js} {
		t.Run(format, func(t *testing.T) {
			cfg, err := ParseSiteConfig([]byte(body), format)
			require.NoError(t, err)
			assert.Equal(t, "Friends XI e.V.", cfg.Name)
			assert.Equal(t, "2012", cfg.Founded)
			require.Len(t, cfg.Nav, 1)
			assert.Equal(t, "/", cfg.Nav[0].URL)
		})
	}
}

func TestParseSiteConfigErrors(t *testing.T) {
	_, err := ParseSiteConfig([]byte("name: x"), "ini")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = ParseSiteConfig([]byte("tagline: nameless"), "yaml")
	assert.ErrorContains(t, err, "name is required")
}

func TestLoadSiteConfigByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"Friends XI\"\n"), 0o644))

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Friends XI", cfg.Name)

	_, err = LoadSiteConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
