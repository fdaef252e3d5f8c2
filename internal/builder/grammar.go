package builder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/quantmind-br/extbuild-go/internal/manifest"
)

// Grammars compile against plain wasi rather than the component model
const grammarTarget = "wasm32-wasi"

// compileGrammar fetches one grammar's sources and compiles them into
// grammars/<name>.wasm under the extension directory.
func (b *Builder) compileGrammar(ctx context.Context, extensionDir, name string, entry manifest.GrammarManifestEntry) error {
	clangPath, err := exec.LookPath(b.cfg.Toolchain.Clang)
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", b.cfg.Toolchain.Clang, err)
	}
	if b.cfg.Toolchain.WasiSysroot == "" {
		return ErrSysrootUnset
	}

	grammarDir := filepath.Join(extensionDir, "grammars", name)
	wasmPath := grammarDir + ".wasm"

	if err := b.fetcher.EnsureRevision(ctx, grammarDir, entry.Repository, entry.Rev); err != nil {
		return err
	}

	sourceRoot := grammarDir
	if entry.Path != "" {
		sourceRoot = filepath.Join(grammarDir, entry.Path)
	}
	srcDir := filepath.Join(sourceRoot, "src")

	hasScanner := false
	if _, err := os.Stat(filepath.Join(srcDir, "scanner.c")); err == nil {
		hasScanner = true
	}

	args := grammarCompileArgs(name, srcDir, wasmPath, b.cfg.Toolchain.WasiSysroot, hasScanner)
	cmd := exec.CommandContext(ctx, clangPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Tool: "clang", Stderr: stderr.String(), Err: err}
	}

	return nil
}

// grammarCompileArgs builds the clang invocation for one grammar. The
// exported tree_sitter_<name> symbol is what hosts look up when loading the
// module.
func grammarCompileArgs(name, srcDir, outputPath, sysroot string, includeScanner bool) []string {
	args := []string{
		"--target=" + grammarTarget,
		"--sysroot=" + sysroot,
		"-fPIC",
		"-shared",
		"-Os",
		"-Wl,--export=tree_sitter_" + name,
		"-o", outputPath,
		"-I", srcDir,
		filepath.Join(srcDir, "parser.c"),
	}
	if includeScanner {
		args = append(args, filepath.Join(srcDir, "scanner.c"))
	}
	return args
}
