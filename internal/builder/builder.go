// Package builder compiles a source extension into its portable artifacts:
// a wasm component exposing the extension's capabilities, and one compiled
// parser module per declared grammar.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/extbuild-go/internal/config"
	"github.com/quantmind-br/extbuild-go/internal/gitrepo"
	"github.com/quantmind-br/extbuild-go/internal/manifest"
	"github.com/quantmind-br/extbuild-go/internal/utils"
	"github.com/quantmind-br/extbuild-go/internal/wasmver"
)

// Builder orchestrates the build pipeline for one extension at a time.
// Distinct extensions may be built concurrently by distinct callers; two
// builds of the same extension directory must not overlap.
type Builder struct {
	cfg      *config.Config
	fetcher  gitrepo.Fetcher
	versions wasmver.Extractor
	logger   *utils.Logger
}

// Options contains options for creating a Builder
type Options struct {
	Config   *config.Config
	Fetcher  gitrepo.Fetcher
	Versions wasmver.Extractor
	Logger   *utils.Logger
}

// CompileOptions controls a single extension build
type CompileOptions struct {
	// Release selects the release build profile for the native library.
	Release bool
}

// NewBuilder creates a new builder with the given options
func NewBuilder(opts Options) (*Builder, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	logger = logger.WithComponent("builder")

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = gitrepo.NewClient(logger)
	}

	versions := opts.Versions
	if versions == nil {
		versions = wasmver.SectionExtractor{}
	}

	return &Builder{
		cfg:      opts.Config,
		fetcher:  fetcher,
		versions: versions,
		logger:   logger,
	}, nil
}

// CompileExtension runs the full pipeline for the extension at
// extensionDir: normalize the manifest, compile the native library if one
// is declared, then compile every grammar in deterministic order. The
// manifest is mutated in place; on success its Lib.Version reflects the
// compiled component and extension.wasm plus each grammar's .wasm exist on
// disk. Any failure aborts the whole build, though artifacts from stages
// that already completed are left behind.
func (b *Builder) CompileExtension(ctx context.Context, extensionDir string, m *manifest.ExtensionManifest, opts CompileOptions) error {
	if !filepath.IsAbs(extensionDir) {
		return fmt.Errorf("%w: %s", ErrRelativePath, extensionDir)
	}

	if err := os.MkdirAll(b.cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir %s: %w", b.cfg.CacheDir, err)
	}

	if err := manifest.PopulateDefaults(m, extensionDir); err != nil {
		return fmt.Errorf("failed to populate manifest defaults: %w", err)
	}

	log := b.logger.WithExtension(m.ID)

	if m.Lib.Kind != nil && *m.Lib.Kind == manifest.LibraryKindRust {
		log.Info().Str("dir", extensionDir).Msg("Compiling Rust extension")
		if err := b.compileRustExtension(ctx, extensionDir, m, opts); err != nil {
			return fmt.Errorf("failed to compile Rust extension: %w", err)
		}
		log.Info().Str("dir", extensionDir).Msg("Compiled Rust extension")
	}

	for _, name := range m.GrammarNames() {
		log.Info().Str("grammar", name).Msg("Compiling grammar")
		if err := b.compileGrammar(ctx, extensionDir, name, m.Grammars[name]); err != nil {
			return fmt.Errorf("failed to compile grammar %q: %w", name, err)
		}
		log.Info().Str("grammar", name).Msg("Compiled grammar")
	}

	log.Info().Str("dir", extensionDir).Msg("Finished compiling extension")
	return nil
}
