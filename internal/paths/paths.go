package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StatePaths captures canonical locations for toolkeep's persisted state.
type StatePaths struct {
	Root         string
	RegistryFile string
	SettingsFile string
	LogsDir      string
}

// Resolve determines the state directory, honouring the TOOLKEEP_STATE_DIR
// override before falling back to the per-user default location.
func Resolve() (StatePaths, error) {
	if override, ok := os.LookupEnv("TOOLKEEP_STATE_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return StatePaths{}, fmt.Errorf("resolve TOOLKEEP_STATE_DIR: %w", err)
		}
		return newStatePaths(abs), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return StatePaths{}, fmt.Errorf("detect user home: %w", err)
	}

	var root string
	switch runtime.GOOS {
	case "darwin":
		root = filepath.Join(home, "Library", "Application Support", "toolkeep")
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			root = filepath.Join(localAppData, "toolkeep")
		} else {
			root = filepath.Join(home, "AppData", "Local", "toolkeep")
		}
	default:
		root = filepath.Join(home, ".local", "share", "toolkeep")
	}
	return newStatePaths(root), nil
}

func newStatePaths(root string) StatePaths {
	return StatePaths{
		Root:         root,
		RegistryFile: filepath.Join(root, "registry.txt"),
		SettingsFile: filepath.Join(root, "settings.conf"),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// EnsureRoot makes sure the state directory exists on disk.
func (p StatePaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
