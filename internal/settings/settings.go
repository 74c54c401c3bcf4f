// Package settings persists toolkeep's single configured value, the default
// install root, in a KEY=VALUE settings file.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyDefaultInstallDir is the only key the settings file defines today.
const KeyDefaultInstallDir = "DEFAULT_INSTALL_DIR"

// ErrUnresolvableRoot is returned when no install root is persisted and no
// interactive channel is available to ask for one. Batch invocations fail
// fast instead of blocking on input.
var ErrUnresolvableRoot = errors.New("install root not configured")

// Prompter obtains a single line of input from the user.
type Prompter interface {
	PromptLine(message string) (string, error)
}

// Resolver resolves the install root once per process. The resolved value is
// treated as a constant for the remainder of execution and passed explicitly
// into the orchestrator.
type Resolver struct {
	path     string
	prompter Prompter
}

// NewResolver creates a resolver over the settings file. prompter may be nil
// for non-interactive invocations.
func NewResolver(path string, prompter Prompter) *Resolver {
	return &Resolver{path: path, prompter: prompter}
}

// InstallRoot returns the persisted install root, prompting for and
// persisting one on first use. The returned path is absolute.
func (r *Resolver) InstallRoot() (string, error) {
	values, err := load(r.path)
	if err != nil {
		return "", err
	}
	if dir := strings.TrimSpace(values[KeyDefaultInstallDir]); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve install root: %w", err)
		}
		return abs, nil
	}

	if r.prompter == nil {
		return "", fmt.Errorf("%w: set it with `toolkeep config set-root` or run interactively", ErrUnresolvableRoot)
	}

	answer, err := r.prompter.PromptLine("Default install directory")
	if err != nil {
		return "", fmt.Errorf("prompt install root: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: empty answer", ErrUnresolvableRoot)
	}

	abs, err := filepath.Abs(answer)
	if err != nil {
		return "", fmt.Errorf("resolve install root: %w", err)
	}
	if err := r.Set(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Set persists the install root, replacing any previous value while keeping
// unrecognized keys intact.
func (r *Resolver) Set(dir string) error {
	return save(r.path, KeyDefaultInstallDir, dir)
}

// Peek returns the persisted install root without prompting; empty when the
// key is absent.
func (r *Resolver) Peek() (string, error) {
	values, err := load(r.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(values[KeyDefaultInstallDir]), nil
}

func load(path string) (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values, nil
}

// save rewrites the settings file with key set to value. Existing lines are
// carried over untouched except for the updated key.
func save(path, key, value string) error {
	var lines []string
	replaced := false

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read settings: %w", err)
	}
	if err == nil {
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			trimmed := strings.TrimSpace(line)
			if k, _, ok := strings.Cut(trimmed, "="); ok && strings.TrimSpace(k) == key {
				lines = append(lines, key+"="+value)
				replaced = true
				continue
			}
			lines = append(lines, line)
		}
	}
	if !replaced {
		lines = append(lines, key+"="+value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "settings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}
