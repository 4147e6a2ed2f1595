package plugins

import (
	"os"
	"path/filepath"

	"github.com/ImSingee/go-ex/ee"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/vault"
)

// VaultDir is set by the global --vault flag; empty means "walk up from
// the working directory".
var VaultDir = ""

func Commands() []*cobra.Command {
	return []*cobra.Command{
		ListCommand(),
		SetCommand(),
		InstallCommand(),
		TagsCommand(),
	}
}

func resolveVault() (string, error) {
	if VaultDir != "" {
		dir, err := filepath.Abs(VaultDir)
		if err != nil {
			return "", ee.Wrapf(err, "cannot get absolute path of %s", VaultDir)
		}
		if !vault.IsVault(dir) {
			return "", ee.Errorf("%s is not an obsidian vault (no %s directory)", dir, vault.ObsidianDir)
		}

		return dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", ee.Wrap(err, "cannot get working directory")
	}

	return vault.Find(wd)
}

func findInstalled(installed []*vault.PluginInfo, id string) *vault.PluginInfo {
	for _, info := range installed {
		if info.ID() == id {
			return info
		}
	}

	return nil
}
