package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/ImSingee/go-ex/pp"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/registry"
	"github.com/vaultget/vaultget/internal/vault"
)

type listOptions struct{}

func ListCommand() *cobra.Command {
	o := &listOptions{}

	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed plugins and their download configuration",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context())
		},
	}
}

// run is the render pass: every installed plugin gets (or lazily
// receives) a config entry, pre-filled with the community registry's
// repo guess, and the settings are saved once at the end.
func (o *listOptions) run(ctx context.Context) error {
	vaultDir, err := resolveVault()
	if err != nil {
		return err
	}

	settings, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	installed := vault.Scan(vaultDir)
	if len(installed) == 0 {
		pp.Println("No plugins found.")
		return settings.Save()
	}

	// same order as the settings file
	sort.Slice(installed, func(i, j int) bool {
		return config.CompareIDs(installed[i].ID(), installed[j].ID()) < 0
	})

	repos := registry.NewClient().Repos(ctx)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tVERSION\tREPO\tTAG")

	for _, info := range installed {
		if info.Manifest == nil {
			_, _ = fmt.Fprintf(w, "%s\t?\t?\t?\n", filepath.Base(info.Dir))
			continue
		}

		cfg := settings.FindOrCreate(info.Manifest.ID)
		if cfg.Repo == "" {
			cfg.Repo = repos[cfg.ID]
		}

		repoRef := cfg.Repo
		if repoRef == "" {
			repoRef = "-"
		}
		tag := cfg.ReleaseTag
		if tag == "" {
			tag = "(installed version)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cfg.ID, info.Manifest.Version, repoRef, tag)
	}

	_ = w.Flush()

	return settings.Save()
}
