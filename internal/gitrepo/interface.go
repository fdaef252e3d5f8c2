package gitrepo

import "context"

// Fetcher guarantees that a specific revision of a remote repository is
// available at a local directory.
type Fetcher interface {
	// EnsureRevision makes rev from url available, checked out, at dir.
	// An existing dir is trusted as a valid checkout and left untouched.
	EnsureRevision(ctx context.Context, dir, url, rev string) error
}
