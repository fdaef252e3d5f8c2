package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// grammarConfig is the shape of a legacy per-grammar TOML file under the
// extension's grammars/ directory.
type grammarConfig struct {
	Repository string `toml:"repository"`
	Commit     string `toml:"commit"`
	Path       string `toml:"path"`
}

// PopulateDefaults fills in the manifest fields that can be derived from the
// extension directory's layout, without overwriting explicitly declared
// data. Legacy manifests are treated as fully rederivable: their computed
// collections are discarded and rebuilt from disk.
func PopulateDefaults(m *ExtensionManifest, extensionDir string) error {
	if m.SchemaVersion.IsLegacy() {
		m.Languages = nil
		m.Grammars = map[string]GrammarManifestEntry{}
		m.Themes = nil
	}
	if m.Grammars == nil {
		m.Grammars = map[string]GrammarManifestEntry{}
	}

	if fileExists(filepath.Join(extensionDir, "Cargo.toml")) {
		kind := LibraryKindRust
		m.Lib.Kind = &kind
	}

	if err := populateLanguages(m, extensionDir); err != nil {
		return err
	}
	if err := populateThemeFiles(&m.Themes, extensionDir, "themes"); err != nil {
		return err
	}
	if err := populateThemeFiles(&m.IconThemes, extensionDir, "icon_themes"); err != nil {
		return err
	}

	if fileExists(filepath.Join(extensionDir, "snippets.json")) {
		m.Snippets = filepath.Join(extensionDir, "snippets.json")
	}

	// Legacy extensions declare grammars as loose TOML files under
	// grammars/ rather than in the manifest itself.
	if m.SchemaVersion.IsLegacy() {
		if err := populateLegacyGrammars(m, extensionDir); err != nil {
			return err
		}
	}

	return nil
}

// populateLanguages appends every languages/ subdirectory that carries a
// config.toml, recorded relative to the extension root.
func populateLanguages(m *ExtensionManifest, extensionDir string) error {
	languagesDir := filepath.Join(extensionDir, "languages")
	if !dirExists(languagesDir) {
		return nil
	}

	entries, err := os.ReadDir(languagesDir)
	if err != nil {
		return fmt.Errorf("failed to list languages dir: %w", err)
	}
	for _, entry := range entries {
		languageDir := filepath.Join(languagesDir, entry.Name())
		if !fileExists(filepath.Join(languageDir, "config.toml")) {
			continue
		}
		rel, err := filepath.Rel(extensionDir, languageDir)
		if err != nil {
			return err
		}
		if !slices.Contains(m.Languages, rel) {
			m.Languages = append(m.Languages, rel)
		}
	}
	return nil
}

// populateThemeFiles appends every .json file directly inside the named
// subdirectory to the given collection, deduplicated by relative path.
func populateThemeFiles(paths *[]string, extensionDir, dirName string) error {
	dir := filepath.Join(extensionDir, dirName)
	if !dirExists(dir) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s dir: %w", dirName, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rel := filepath.Join(dirName, entry.Name())
		if !slices.Contains(*paths, rel) {
			*paths = append(*paths, rel)
		}
	}
	return nil
}

func populateLegacyGrammars(m *ExtensionManifest, extensionDir string) error {
	grammarsDir := filepath.Join(extensionDir, "grammars")
	if !dirExists(grammarsDir) {
		return nil
	}

	entries, err := os.ReadDir(grammarsDir)
	if err != nil {
		return fmt.Errorf("failed to list grammars dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".toml")
		if name == "" {
			return fmt.Errorf("%w: %s", ErrNoGrammarName, entry.Name())
		}

		var cfg grammarConfig
		if _, err := toml.DecodeFile(filepath.Join(grammarsDir, entry.Name()), &cfg); err != nil {
			return fmt.Errorf("failed to parse grammar config %s: %w", entry.Name(), err)
		}

		// Manually declared entries win over disk-derived ones.
		if _, ok := m.Grammars[name]; !ok {
			m.Grammars[name] = GrammarManifestEntry{
				Repository: cfg.Repository,
				Rev:        cfg.Commit,
				Path:       cfg.Path,
			}
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
