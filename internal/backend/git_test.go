package backend

import (
	"context"
	"errors"
	"testing"

	"toolkeep/internal/registry"
)

type fakeVCS struct {
	present bool
	cloned  []string
	pulled  []string
	pullErr error
}

func (f *fakeVCS) Clone(_ context.Context, url, path string) error {
	f.cloned = append(f.cloned, path)
	f.present = true
	return nil
}

func (f *fakeVCS) Pull(_ context.Context, path string) error {
	f.pulled = append(f.pulled, path)
	return f.pullErr
}

func (f *fakeVCS) HasRepository(string) bool {
	return f.present
}

func TestGitInstallClonesWhenAbsentThenPulls(t *testing.T) {
	vcs := &fakeVCS{}
	g := &Git{VCS: vcs}
	rec := registry.Record{Name: "foo", Dest: "tools/foo", Kind: registry.KindGit, Source: "https://example.org/foo.git"}

	if _, err := g.Install(context.Background(), rec, "/root/tools/foo"); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	if len(vcs.cloned) != 1 || len(vcs.pulled) != 0 {
		t.Fatalf("expected clone transition, got clones=%d pulls=%d", len(vcs.cloned), len(vcs.pulled))
	}

	// Re-running install with the clone present is a sync pull.
	if _, err := g.Install(context.Background(), rec, "/root/tools/foo"); err != nil {
		t.Fatalf("second Install: %v", err)
	}
	if len(vcs.cloned) != 1 || len(vcs.pulled) != 1 {
		t.Fatalf("expected pull transition, got clones=%d pulls=%d", len(vcs.cloned), len(vcs.pulled))
	}
}

func TestGitPullFailureSurfacesAsSyncFailed(t *testing.T) {
	vcs := &fakeVCS{present: true, pullErr: errors.New("non-fast-forward update")}
	g := &Git{VCS: vcs}
	rec := registry.Record{Name: "foo", Dest: "tools/foo", Kind: registry.KindGit, Source: "https://example.org/foo.git"}

	_, err := g.Update(context.Background(), rec, "/root/tools/foo")
	if !errors.Is(err, ErrSyncFailed) {
		t.Fatalf("expected ErrSyncFailed, got %v", err)
	}
}
