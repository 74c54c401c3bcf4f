package backend

import (
	"context"
	"fmt"

	"toolkeep/internal/registry"
)

// Git keeps a repository clone at the destination. Install and update share
// one state machine: no repository metadata at dest means clone, otherwise
// pull.
type Git struct {
	VCS VersionControl
}

func (g *Git) Install(ctx context.Context, rec registry.Record, dest string) (Result, error) {
	return g.sync(ctx, rec, dest)
}

func (g *Git) Update(ctx context.Context, rec registry.Record, dest string) (Result, error) {
	return g.sync(ctx, rec, dest)
}

func (g *Git) sync(ctx context.Context, rec registry.Record, dest string) (Result, error) {
	if g.VCS.HasRepository(dest) {
		if err := g.VCS.Pull(ctx, dest); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		return Result{}, nil
	}
	if err := g.VCS.Clone(ctx, rec.Source, dest); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return Result{}, nil
}
