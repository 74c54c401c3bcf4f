package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	installRoot := filepath.Join(dir, "tools")
	store := NewStore(filepath.Join(dir, "registry.txt"), installRoot)
	return store, installRoot
}

func mustAdd(t *testing.T, store *Store, rec Record) {
	t.Helper()
	added, err := store.Add(rec)
	if err != nil {
		t.Fatalf("Add(%s): %v", rec.Name, err)
	}
	if !added {
		t.Fatalf("Add(%s): expected record to be added", rec.Name)
	}
}

func TestAddDuplicateIsSilentSkip(t *testing.T) {
	store, _ := newTestStore(t)

	first := Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"}
	mustAdd(t, store, first)

	added, err := store.Add(Record{Name: "foo", Dest: "elsewhere", Kind: KindBinary, Source: "https://other.example"})
	if err != nil {
		t.Fatalf("duplicate Add: %v", err)
	}
	if added {
		t.Fatal("expected duplicate add to be skipped")
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0] != first {
		t.Fatalf("expected first record retained, got %+v", records[0])
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		mustAdd(t, store, Record{Name: name, Dest: "tools/" + name, Kind: KindGit, Source: "https://example.org/" + name})
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, name := range names {
		if records[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, records[i].Name)
		}
	}
}

func TestRemoveDeletesRecordAndArtifacts(t *testing.T) {
	store, installRoot := newTestStore(t)

	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})
	mustAdd(t, store, Record{Name: "bar", Dest: "bin/bar", Kind: KindBinary, Source: "https://example.org/bar"})

	artifactDir := filepath.Join(installRoot, "tools", "foo")
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		t.Fatalf("prepare artifact dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(artifactDir, "payload"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	if err := store.Remove("foo"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, rec := range records {
		if rec.Name == "foo" {
			t.Fatal("expected foo to be removed")
		}
	}
	if _, err := os.Stat(artifactDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected artifact dir deleted, stat err %v", err)
	}
}

func TestRemoveMissingArtifactDirIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)
	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})
	if err := store.Remove("foo"); err != nil {
		t.Fatalf("Remove without artifacts: %v", err)
	}
}

func TestRemoveAbsentName(t *testing.T) {
	store, _ := newTestStore(t)
	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})

	err := store.Remove("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected registry unchanged, got %d records", len(records))
	}
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})
	mustAdd(t, store, Record{Name: "bar", Dest: AptDest, Kind: KindApt, Source: "bar"})

	snapshot, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	backupPath, err := store.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.Contains(filepath.Base(backupPath), ".backup_") {
		t.Fatalf("unexpected backup name %s", backupPath)
	}

	// Mutate after the snapshot, then restore.
	if err := store.Remove("foo"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	mustAdd(t, store, Record{Name: "extra", Dest: "tools/extra", Kind: KindGit, Source: "https://example.org/extra.git"})

	if err := store.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	restored, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(restored) != len(snapshot) {
		t.Fatalf("expected %d records after restore, got %d", len(snapshot), len(restored))
	}
	for i := range snapshot {
		if restored[i] != snapshot[i] {
			t.Fatalf("record %d mismatch: %+v != %+v", i, restored[i], snapshot[i])
		}
	}
}

func TestRestoreByBareName(t *testing.T) {
	store, _ := newTestStore(t)
	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})

	backupPath, err := store.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if err := store.Restore(filepath.Base(backupPath)); err != nil {
		t.Fatalf("Restore by bare name: %v", err)
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.Restore("registry.txt.backup_19700101000000")
	if !errors.Is(err, ErrBackupNotFound) {
		t.Fatalf("expected ErrBackupNotFound, got %v", err)
	}
}

func TestListReflectsExternalRewrite(t *testing.T) {
	store, _ := newTestStore(t)
	mustAdd(t, store, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})

	// A second store over the same file mutates it; the first store's next
	// List picks the change up because List re-reads the backing file.
	other := NewStore(store.Path(), "")
	mustAdd(t, other, Record{Name: "bar", Dest: "bin/bar", Kind: KindBinary, Source: "https://example.org/bar"})

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}
