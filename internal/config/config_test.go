package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.TextFormat)
	assert.Empty(t, cfg.InputFormat)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.TablePath)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.File)
}

func TestLoadFindsFileInParent(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
text_format = "YAML"
db = "history.db"
table = "/opt/tables/beta.cue"
`)
	nested := filepath.Join(root, "maps", "world1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested, "")
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.TextFormat)
	assert.Equal(t, filepath.Join(root, "history.db"), cfg.DBPath)
	assert.Equal(t, "/opt/tables/beta.cue", cfg.TablePath)
	assert.Equal(t, path, cfg.File)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`input_format = "cue"`), 0o644))

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "cue", cfg.InputFormat)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "cannot read")
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `text_format = `)

	_, err := Load(dir, "")
	assert.ErrorContains(t, err, "parse error")
}

func TestLoadUnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `colour = "blue"`)

	_, err := Load(dir, "")
	assert.ErrorContains(t, err, `unknown key "colour"`)
}

func TestLoadInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `text_format = "xml"`)

	_, err := Load(dir, "")
	assert.ErrorContains(t, err, "text_format")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
text_format = "yaml"
verbose = false
`)
	t.Setenv("PLATYMAP_TEXT_FORMAT", "cue")
	t.Setenv("PLATYMAP_VERBOSE", "true")
	t.Setenv("PLATYMAP_DB", "/tmp/env.db")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "cue", cfg.TextFormat)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
}

func TestEnvParseError(t *testing.T) {
	t.Setenv("PLATYMAP_VERBOSE", "maybe")

	_, err := Load(t.TempDir(), "")
	assert.ErrorContains(t, err, "parse env:")
}

func TestFindNone(t *testing.T) {
	path, err := Find(t.TempDir())
	require.NoError(t, err)
	// A platymap.toml above the temp dir would be found here; none is expected.
	assert.Empty(t, path)
}
