package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the current manifest file name
const ManifestFile = "extension.toml"

// LegacyManifestFile is the legacy (schema version 0) manifest file name
const LegacyManifestFile = "extension.json"

// Loader loads extension manifests from disk
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromDir reads the extension manifest from the given extension
// directory, preferring extension.toml and falling back to the legacy
// extension.json.
func (l *Loader) LoadFromDir(extensionDir string) (*ExtensionManifest, error) {
	tomlPath := filepath.Join(extensionDir, ManifestFile)
	if _, err := os.Stat(tomlPath); err == nil {
		return l.loadTOML(tomlPath)
	}

	jsonPath := filepath.Join(extensionDir, LegacyManifestFile)
	if _, err := os.Stat(jsonPath); err == nil {
		return l.loadLegacyJSON(jsonPath)
	}

	return nil, fmt.Errorf("%w in %s", ErrNotFound, extensionDir)
}

func (l *Loader) loadTOML(path string) (*ExtensionManifest, error) {
	var m ExtensionManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if m.Grammars == nil {
		m.Grammars = map[string]GrammarManifestEntry{}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (l *Loader) loadLegacyJSON(path string) (*ExtensionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m ExtensionManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	// extension.json predates schema versioning; whatever the file says,
	// it is the legacy schema.
	m.SchemaVersion = SchemaVersionLegacy
	if m.Grammars == nil {
		m.Grammars = map[string]GrammarManifestEntry{}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
