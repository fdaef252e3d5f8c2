package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_LoadFromDir_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "extension.toml"), `
id = "my-extension"
name = "My Extension"
version = "1.2.0"
schema_version = 1

[grammars.python]
repository = "https://example.com/tree-sitter-python"
rev = "abc123"
`)

	loader := NewLoader()
	m, err := loader.LoadFromDir(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "my-extension", m.ID)
	assert.Equal(t, SchemaVersion(1), m.SchemaVersion)
	assert.False(t, m.SchemaVersion.IsLegacy())
	require.Contains(t, m.Grammars, "python")
	assert.Equal(t, "abc123", m.Grammars["python"].Rev)
}

func TestLoader_LoadFromDir_LegacyJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "extension.json"), `{
		"id": "old-extension",
		"name": "Old Extension",
		"version": "0.1.0",
		"schema_version": 3
	}`)

	loader := NewLoader()
	m, err := loader.LoadFromDir(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "old-extension", m.ID)
	// extension.json is always the legacy schema, whatever the file claims
	assert.True(t, m.SchemaVersion.IsLegacy())
	assert.NotNil(t, m.Grammars)
}

func TestLoader_LoadFromDir_PrefersTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "extension.toml"), `id = "new"`+"\n"+`schema_version = 1`)
	writeFile(t, filepath.Join(tmpDir, "extension.json"), `{"id": "old"}`)

	loader := NewLoader()
	m, err := loader.LoadFromDir(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "new", m.ID)
}

func TestLoader_LoadFromDir_NotFound(t *testing.T) {
	loader := NewLoader()

	m, err := loader.LoadFromDir(t.TempDir())

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoader_LoadFromDir_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "extension.toml"), `id = [broken`)

	loader := NewLoader()
	_, err := loader.LoadFromDir(tmpDir)

	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoader_LoadFromDir_MissingID(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "extension.toml"), `name = "anonymous"`)

	loader := NewLoader()
	_, err := loader.LoadFromDir(tmpDir)

	assert.ErrorIs(t, err, ErrMissingID)
}
