package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type scriptedPrompter struct {
	answer string
	asked  int
}

func (p *scriptedPrompter) PromptLine(string) (string, error) {
	p.asked++
	return p.answer, nil
}

func TestInstallRootPromptsOnceAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")
	prompter := &scriptedPrompter{answer: "/opt/tools"}

	r := NewResolver(path, prompter)
	root, err := r.InstallRoot()
	if err != nil {
		t.Fatalf("InstallRoot: %v", err)
	}
	if root != "/opt/tools" {
		t.Fatalf("expected /opt/tools, got %s", root)
	}
	if prompter.asked != 1 {
		t.Fatalf("expected 1 prompt, got %d", prompter.asked)
	}

	// A fresh resolver re-reads the persisted value; no second prompt.
	again := NewResolver(path, prompter)
	root, err = again.InstallRoot()
	if err != nil {
		t.Fatalf("second InstallRoot: %v", err)
	}
	if root != "/opt/tools" {
		t.Fatalf("expected persisted /opt/tools, got %s", root)
	}
	if prompter.asked != 1 {
		t.Fatalf("expected no re-prompt, got %d prompts", prompter.asked)
	}
}

func TestInstallRootNonInteractiveFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")
	r := NewResolver(path, nil)
	_, err := r.InstallRoot()
	if !errors.Is(err, ErrUnresolvableRoot) {
		t.Fatalf("expected ErrUnresolvableRoot, got %v", err)
	}
}

func TestSetPreservesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")
	if err := os.WriteFile(path, []byte("# comment\nOTHER_KEY=kept\nDEFAULT_INSTALL_DIR=/old\n"), 0o644); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	r := NewResolver(path, nil)
	if err := r.Set("/new/root"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "OTHER_KEY=kept") {
		t.Fatalf("expected unknown key preserved, got %q", content)
	}
	if !strings.Contains(content, "DEFAULT_INSTALL_DIR=/new/root") {
		t.Fatalf("expected updated key, got %q", content)
	}
	if strings.Contains(content, "/old") {
		t.Fatalf("expected old value replaced, got %q", content)
	}
}

func TestPeekAbsent(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "settings.conf"), nil)
	value, err := r.Peek()
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}
}
