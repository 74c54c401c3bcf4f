package paths

import (
	"path/filepath"
	"testing"
)

func TestResolveHonoursOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TOOLKEEP_STATE_DIR", dir)

	pp, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pp.Root != dir {
		t.Fatalf("expected root %s, got %s", dir, pp.Root)
	}
	if pp.RegistryFile != filepath.Join(dir, "registry.txt") {
		t.Fatalf("unexpected registry path %s", pp.RegistryFile)
	}
	if pp.SettingsFile != filepath.Join(dir, "settings.conf") {
		t.Fatalf("unexpected settings path %s", pp.SettingsFile)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope")

	ok, err := FileExists(missing)
	if err != nil {
		t.Fatalf("FileExists: %v", err)
	}
	if ok {
		t.Fatal("expected missing file to report false")
	}

	ok, err = DirExists(dir)
	if err != nil {
		t.Fatalf("DirExists: %v", err)
	}
	if !ok {
		t.Fatal("expected dir to exist")
	}
}
