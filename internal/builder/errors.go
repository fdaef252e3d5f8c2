package builder

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the builder package
var (
	// ErrRelativePath indicates the extension directory is not absolute
	ErrRelativePath = errors.New("extension dir is not an absolute path")

	// ErrSysrootUnset indicates the wasi-libc sysroot is not configured
	ErrSysrootUnset = errors.New("WASI_LIBC_PATH is not set; point it at a wasi-libc sysroot")

	// ErrNoPackageName indicates the extension's Cargo.toml declares no package name
	ErrNoPackageName = errors.New("Cargo.toml does not declare a package name")
)

// CommandError represents a toolchain subprocess that exited non-zero.
// Stderr is surfaced verbatim; the subprocess's own diagnostics are the
// only actionable detail the pipeline has.
type CommandError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Tool, e.Err, stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
