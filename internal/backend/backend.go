// Package backend holds the per-kind install/update implementations and the
// dispatch table that selects one by a record's kind.
package backend

import (
	"context"
	"errors"

	"toolkeep/internal/netfetch"
	"toolkeep/internal/registry"
)

var (
	// ErrAssetNotFound is returned when the latest release of a repository no
	// longer publishes an asset under the recorded name.
	ErrAssetNotFound = errors.New("release asset not found")

	// ErrSyncFailed marks repository clone/pull failures.
	ErrSyncFailed = errors.New("repository sync failed")

	// ErrPackageInstallFailed marks privileged package install failures.
	ErrPackageInstallFailed = errors.New("package install failed")
)

// Result carries backend outcome details worth persisting. Checksum is the
// sha256 of a fetched binary artifact; it is recorded, never verified.
type Result struct {
	Checksum string
}

// Backend installs and updates one kind of tool. dest is the absolute
// destination path; package-kind backends ignore it.
type Backend interface {
	Install(ctx context.Context, rec registry.Record, dest string) (Result, error)
	Update(ctx context.Context, rec registry.Record, dest string) (Result, error)
}

// VersionControl is the capability the git backend consumes.
type VersionControl interface {
	Clone(ctx context.Context, url, path string) error
	Pull(ctx context.Context, path string) error
	HasRepository(path string) bool
}

// PackageInstaller is the capability the apt backend consumes.
type PackageInstaller interface {
	InstallPackage(ctx context.Context, name string) error
}

// Deps bundles the capabilities backends are built from.
type Deps struct {
	Fetcher  netfetch.Fetcher
	Releases netfetch.ReleaseLister
	VCS      VersionControl
	Packages PackageInstaller
}

// Set maps record kinds to backends. Supporting a new kind means one more
// entry here; call sites stay untouched.
type Set map[registry.Kind]Backend

// NewSet wires the standard backends from deps.
func NewSet(deps Deps) Set {
	return Set{
		registry.KindBinary: &Binary{Fetcher: deps.Fetcher, Releases: deps.Releases},
		registry.KindGit:    &Git{VCS: deps.VCS},
		registry.KindApt:    &Apt{Packages: deps.Packages},
	}
}

// For selects the backend for a kind.
func (s Set) For(kind registry.Kind) (Backend, bool) {
	b, ok := s[kind]
	return b, ok
}
