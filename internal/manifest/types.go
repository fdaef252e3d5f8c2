package manifest

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion identifies the manifest schema an extension was authored
// against. Version 0 is the legacy extension.json schema whose computed
// fields are rederived from disk on every build.
type SchemaVersion int

// SchemaVersionLegacy is the extension.json schema
const SchemaVersionLegacy SchemaVersion = 0

// IsLegacy reports whether the manifest uses the legacy schema
func (v SchemaVersion) IsLegacy() bool {
	return v == SchemaVersionLegacy
}

// LibraryKind identifies the source language of the extension's own library
type LibraryKind string

// LibraryKindRust marks an extension with a Rust crate at its root
const LibraryKindRust LibraryKind = "rust"

// LibManifest describes the extension's compiled library, if any.
// Version is nil until the build pipeline extracts the compatibility
// version tag from the compiled component.
type LibManifest struct {
	Kind    *LibraryKind    `toml:"kind" json:"kind,omitempty"`
	Version *semver.Version `toml:"-" json:"-"`
}

// GrammarManifestEntry describes one external grammar dependency.
// Entries are immutable once constructed; compilation only reads them.
type GrammarManifestEntry struct {
	Repository string `toml:"repository" json:"repository"`
	Rev        string `toml:"rev" json:"rev"`
	Path       string `toml:"path,omitempty" json:"path,omitempty"`
}

// ExtensionManifest identifies one extension and its declared contents
type ExtensionManifest struct {
	ID            string                          `toml:"id" json:"id"`
	Name          string                          `toml:"name" json:"name"`
	Version       string                          `toml:"version" json:"version"`
	SchemaVersion SchemaVersion                   `toml:"schema_version" json:"schema_version"`
	Description   string                          `toml:"description" json:"description,omitempty"`
	Repository    string                          `toml:"repository" json:"repository,omitempty"`
	Authors       []string                        `toml:"authors" json:"authors,omitempty"`
	Lib           LibManifest                     `toml:"lib" json:"lib"`
	Languages     []string                        `toml:"languages" json:"languages,omitempty"`
	Themes        []string                        `toml:"themes" json:"themes,omitempty"`
	IconThemes    []string                        `toml:"icon_themes" json:"icon_themes,omitempty"`
	Grammars      map[string]GrammarManifestEntry `toml:"grammars" json:"grammars,omitempty"`
	Snippets      string                          `toml:"snippets" json:"snippets,omitempty"`
}

// GrammarNames returns the declared grammar names in sorted order, so
// builds iterate grammars deterministically.
func (m *ExtensionManifest) GrammarNames() []string {
	names := make([]string, 0, len(m.Grammars))
	for name := range m.Grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate validates the manifest
func (m *ExtensionManifest) Validate() error {
	if m.ID == "" {
		return ErrMissingID
	}
	return nil
}
