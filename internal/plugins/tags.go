package plugins

import (
	"context"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/go-ex/pp"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/registry"
	"github.com/vaultget/vaultget/internal/repo"
)

func TagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <plugin-id>",
		Short: "List release tags of a plugin's repository, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(cmd.Context(), args[0])
		},
	}
}

func runTags(ctx context.Context, id string) error {
	vaultDir, err := resolveVault()
	if err != nil {
		return err
	}

	settings, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	repoRef := ""
	if cfg := settings.Find(id); cfg != nil {
		repoRef = cfg.Repo
	}
	if repoRef == "" {
		repoRef = registry.NewClient().Repos(ctx)[id]
	}
	if repoRef == "" {
		return ee.Errorf("no github repo known for plugin %s (set one with `vaultget set %s --repo owner/repository`)", id, id)
	}

	tags, err := repo.Tags(repoRef)
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		pp.Println("No tags found for", repoRef)
		return nil
	}

	for _, tag := range tags {
		pp.Println(tag)
	}

	return nil
}
