package vault

import (
	"os"
	"path/filepath"

	"github.com/ImSingee/go-ex/ee"
)

const ObsidianDir = ".obsidian"

// PluginsDir returns the installed-plugins directory of a vault.
func PluginsDir(vaultDir string) string {
	return filepath.Join(vaultDir, ObsidianDir, "plugins")
}

// IsVault reports whether dir is a vault root (contains a .obsidian directory).
func IsVault(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ObsidianDir))

	return err == nil && info.IsDir()
}

// Find walks up from `from` to the nearest directory containing .obsidian.
func Find(from string) (string, error) {
	dir, err := filepath.Abs(from)
	if err != nil {
		return "", ee.Wrapf(err, "cannot get absolute path of %s", from)
	}

	for {
		if IsVault(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ee.Errorf("cannot find an obsidian vault (no %s directory) in %s or any parent", ObsidianDir, from)
		}
		dir = parent
	}
}
