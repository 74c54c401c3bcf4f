package backend

import (
	"context"
	"fmt"

	"toolkeep/internal/registry"
)

// Apt installs OS packages by name. There is no update transition: the
// orchestrator skips apt records during update-all, and calling Update
// directly is an error.
type Apt struct {
	Packages PackageInstaller
}

func (a *Apt) Install(ctx context.Context, rec registry.Record, _ string) (Result, error) {
	if err := a.Packages.InstallPackage(ctx, rec.Source); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrPackageInstallFailed, err)
	}
	return Result{}, nil
}

func (a *Apt) Update(_ context.Context, rec registry.Record, _ string) (Result, error) {
	return Result{}, fmt.Errorf("%w: %s is owned by the system package manager", ErrPackageInstallFailed, rec.Name)
}
