package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a remove targets a name the registry does not
// hold. Callers report it and continue; it never aborts a session.
var ErrNotFound = errors.New("tool not found in registry")

// ErrBackupNotFound is returned when a restore reference does not resolve to
// an existing backup file.
var ErrBackupNotFound = errors.New("backup not found")

const backupTimeFormat = "20060102150405"

// Store persists the ordered tool registry as a line-oriented file. Every
// mutation writes a temporary file and renames it into place, so a concurrent
// reader only ever sees the pre- or post-mutation content.
type Store struct {
	registryPath string
	installRoot  string
}

// NewStore creates a store over the registry file. installRoot is the base
// directory non-apt destinations are joined with when artifacts are deleted.
func NewStore(registryPath, installRoot string) *Store {
	return &Store{registryPath: registryPath, installRoot: installRoot}
}

// Path returns the live registry file location.
func (s *Store) Path() string {
	return s.registryPath
}

// List re-reads the backing file and returns records in insertion order. A
// missing registry file yields an empty list.
func (s *Store) List() ([]Record, error) {
	data, err := os.ReadFile(s.registryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var records []Record
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("registry line %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Lookup scans for a record by name.
func (s *Store) Lookup(name string) (Record, bool, error) {
	records, err := s.List()
	if err != nil {
		return Record{}, false, err
	}
	for _, rec := range records {
		if rec.Name == name {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// Add appends the record unless one with the same name already exists. A
// duplicate is a silent skip (added=false), never an overwrite: re-adding
// converges on the first record's fields.
func (s *Store) Add(rec Record) (bool, error) {
	records, err := s.List()
	if err != nil {
		return false, err
	}
	for _, existing := range records {
		if existing.Name == rec.Name {
			return false, nil
		}
	}
	records = append(records, rec)
	if err := s.rewrite(records); err != nil {
		return false, err
	}
	return true, nil
}

// Remove rewrites the registry without the named record, then deletes the
// on-disk artifact tree for non-apt kinds. Deleting a directory that does not
// exist is not an error.
func (s *Store) Remove(name string) error {
	records, err := s.List()
	if err != nil {
		return err
	}

	var (
		kept    []Record
		removed Record
		found   bool
	)
	for _, rec := range records {
		if rec.Name == name {
			removed = rec
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err := s.rewrite(kept); err != nil {
		return err
	}

	if removed.Kind != KindApt && s.installRoot != "" {
		target := filepath.Join(s.installRoot, filepath.FromSlash(removed.Dest))
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("delete artifact tree %s: %w", target, err)
		}
	}
	return nil
}

// Backup copies the live registry to a timestamp-suffixed sibling and returns
// its path. Timestamps carry second granularity; a second backup within the
// same second overwrites the first, an accepted edge case.
func (s *Store) Backup() (string, error) {
	data, err := os.ReadFile(s.registryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			data = nil
		} else {
			return "", fmt.Errorf("read registry: %w", err)
		}
	}

	backupPath := fmt.Sprintf("%s.backup_%s", s.registryPath, time.Now().Format(backupTimeFormat))
	if err := writeAtomic(backupPath, data); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

// Restore replaces the live registry content wholesale with the referenced
// backup. ref may be a path or a bare backup file name next to the registry.
func (s *Store) Restore(ref string) error {
	path, err := s.resolveBackupRef(ref)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if err := writeAtomic(s.registryPath, data); err != nil {
		return fmt.Errorf("restore registry: %w", err)
	}
	return nil
}

// Backups lists backup files co-located with the registry, oldest first.
func (s *Store) Backups() ([]string, error) {
	pattern := s.registryPath + ".backup_*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return matches, nil
}

func (s *Store) resolveBackupRef(ref string) (string, error) {
	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		candidates = append(candidates, filepath.Join(filepath.Dir(s.registryPath), ref))
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrBackupNotFound, ref)
}

func (s *Store) rewrite(records []Record) error {
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(rec.String())
		sb.WriteByte('\n')
	}
	if err := writeAtomic(s.registryPath, []byte(sb.String())); err != nil {
		return fmt.Errorf("rewrite registry: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("commit file: %w", err)
	}
	return nil
}
