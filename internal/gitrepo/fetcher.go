package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/quantmind-br/extbuild-go/internal/utils"
)

const originRemote = "origin"

// fetchedRef is the local ref the requested revision is fetched into, so a
// symbolic rev (branch or tag name) stays resolvable after a shallow fetch.
const fetchedRef = "refs/extbuild/fetched"

// Client implements Fetcher using go-git
type Client struct {
	logger *utils.Logger
}

// NewClient creates a new Client
func NewClient(logger *utils.Logger) *Client {
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return &Client{logger: logger.WithComponent("gitrepo")}
}

// EnsureRevision makes rev from url available, checked out, at dir.
//
// If dir already exists it is trusted as a valid checkout and nothing else
// runs; a partially created directory from an earlier failed fetch is
// indistinguishable from a valid one. A marker file written atomically on
// full success would close that gap, but existing extension workflows
// pre-seed grammar directories and rely on them being left alone.
func (c *Client) EnsureRevision(ctx context.Context, dir, url, rev string) error {
	if _, err := os.Stat(dir); err == nil {
		c.logger.Debug().Str("dir", dir).Msg("Directory already present, skipping fetch")
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create grammar directory %s: %w", dir, err)
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		return fmt.Errorf("failed to init repository in %s: %w", dir, err)
	}

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: originRemote,
		URLs: []string{url},
	})
	if err != nil {
		return fmt.Errorf("failed to add remote %s for repository %s: %w", url, dir, err)
	}

	c.logger.Debug().Str("url", url).Str("rev", rev).Msg("Fetching revision")
	fetchErr := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: originRemote,
		Depth:      1,
		Tags:       git.NoTags,
		RefSpecs: []gitconfig.RefSpec{
			gitconfig.RefSpec(fmt.Sprintf("+%s:%s", rev, fetchedRef)),
		},
	})
	if errors.Is(fetchErr, git.NoErrAlreadyUpToDate) {
		fetchErr = nil
	}

	if err := checkout(repo, rev); err != nil {
		// A failed checkout is usually downstream of a failed fetch;
		// report the root cause when there is one.
		if fetchErr != nil {
			return fmt.Errorf("failed to fetch revision %q in directory %s: %w", rev, dir, fetchErr)
		}
		return fmt.Errorf("failed to checkout revision %q in directory %s: %w", rev, dir, err)
	}

	return nil
}

func checkout(repo *git.Repository, rev string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		hash, err = repo.ResolveRevision(plumbing.Revision(fetchedRef))
		if err != nil {
			return fmt.Errorf("failed to resolve revision %q: %w", rev, err)
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	})
}
