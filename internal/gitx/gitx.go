// Package gitx wraps go-git with the clone/pull capability the repository
// backend consumes.
package gitx

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Client implements repository sync over go-git.
type Client struct{}

// HasRepository reports whether path holds repository metadata.
func (Client) HasRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Clone clones url into path.
func (Client) Clone(ctx context.Context, url, path string) error {
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{URL: url})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Pull synchronizes the repository at path with its origin. Local
// modifications or diverged history surface as-is; there is no automatic
// conflict resolution. An already up-to-date worktree is success.
func (Client) Pull(ctx context.Context, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open repository %s: %w", path, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("resolve worktree %s: %w", path, err)
	}
	err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pull %s: %w", path, err)
	}
	return nil
}
