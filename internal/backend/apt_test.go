package backend

import (
	"context"
	"errors"
	"testing"

	"toolkeep/internal/registry"
)

type fakeInstaller struct {
	installed []string
	err       error
}

func (f *fakeInstaller) InstallPackage(_ context.Context, name string) error {
	f.installed = append(f.installed, name)
	return f.err
}

func TestAptInstall(t *testing.T) {
	installer := &fakeInstaller{}
	a := &Apt{Packages: installer}
	rec := registry.Record{Name: "nmap", Dest: registry.AptDest, Kind: registry.KindApt, Source: "nmap"}

	if _, err := a.Install(context.Background(), rec, ""); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if len(installer.installed) != 1 || installer.installed[0] != "nmap" {
		t.Fatalf("unexpected installs %v", installer.installed)
	}
}

func TestAptInstallFailure(t *testing.T) {
	a := &Apt{Packages: &fakeInstaller{err: errors.New("exit status 100")}}
	rec := registry.Record{Name: "ghost", Dest: registry.AptDest, Kind: registry.KindApt, Source: "ghost"}

	_, err := a.Install(context.Background(), rec, "")
	if !errors.Is(err, ErrPackageInstallFailed) {
		t.Fatalf("expected ErrPackageInstallFailed, got %v", err)
	}
}

func TestAptUpdateIsRefused(t *testing.T) {
	a := &Apt{Packages: &fakeInstaller{}}
	rec := registry.Record{Name: "nmap", Dest: registry.AptDest, Kind: registry.KindApt, Source: "nmap"}

	if _, err := a.Update(context.Background(), rec, ""); err == nil {
		t.Fatal("expected update on apt kind to be refused")
	}
}

func TestSetDispatch(t *testing.T) {
	set := NewSet(Deps{
		Fetcher:  &fakeFetcher{},
		Releases: &fakeLister{},
		VCS:      &fakeVCS{},
		Packages: &fakeInstaller{},
	})

	for _, kind := range []registry.Kind{registry.KindBinary, registry.KindGit, registry.KindApt} {
		if _, ok := set.For(kind); !ok {
			t.Fatalf("expected backend for kind %s", kind)
		}
	}
	if _, ok := set.For(registry.Kind("rpm")); ok {
		t.Fatal("expected no backend for unknown kind")
	}
}
