package builder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/quantmind-br/extbuild-go/internal/manifest"
)

// Extensions compile against the wasm component model
const rustTarget = "wasm32-wasip2"

// extensionArtifact is the stable artifact name at the extension root,
// independent of target triple and profile.
const extensionArtifact = "extension.wasm"

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// compileRustExtension builds the extension's crate into a wasm component,
// extracts the embedded compatibility version into the manifest, and writes
// the component to extension.wasm at the extension root.
func (b *Builder) compileRustExtension(ctx context.Context, extensionDir string, m *manifest.ExtensionManifest, opts CompileOptions) error {
	var cargoToml cargoManifest
	if _, err := toml.DecodeFile(filepath.Join(extensionDir, "Cargo.toml"), &cargoToml); err != nil {
		return fmt.Errorf("failed to read Cargo.toml: %w", err)
	}
	if cargoToml.Package.Name == "" {
		return ErrNoPackageName
	}

	args := []string{"build", "--target", rustTarget}
	if opts.Release {
		args = append(args, "--release")
	}
	args = append(args, "--target-dir", filepath.Join(extensionDir, "target"))

	cmd := exec.CommandContext(ctx, b.cfg.Toolchain.Cargo, args...)
	cmd.Dir = extensionDir
	// wasip2 builds hang under sccache; setting the wrapper to the empty
	// string (rather than leaving it unset) overrides an inherited value.
	cmd.Env = append(os.Environ(), "RUSTC_WRAPPER=")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Tool: "cargo", Stderr: stderr.String(), Err: err}
	}

	wasmPath := rustArtifactPath(extensionDir, cargoToml.Package.Name, opts.Release)
	componentBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return fmt.Errorf("failed to read component module %s: %w", wasmPath, err)
	}

	version, err := b.versions.Extract(m.ID, componentBytes)
	if err != nil {
		return fmt.Errorf("compiled wasm does not contain a valid extension api version: %w", err)
	}
	m.Lib.Version = version

	outputPath := filepath.Join(extensionDir, extensionArtifact)
	if err := os.WriteFile(outputPath, componentBytes, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", extensionArtifact, err)
	}

	return nil
}

// rustArtifactPath returns where cargo places the compiled component. The
// wasm target normalizes dashes in package names to underscores in the
// artifact file name.
func rustArtifactPath(extensionDir, packageName string, release bool) string {
	profile := "debug"
	if release {
		profile = "release"
	}
	artifact := strings.ReplaceAll(packageName, "-", "_") + ".wasm"
	return filepath.Join(extensionDir, "target", rustTarget, profile, artifact)
}
