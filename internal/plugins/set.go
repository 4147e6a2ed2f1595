package plugins

import (
	"context"

	"github.com/ImSingee/go-ex/pp"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/lib/shells"
	"github.com/vaultget/vaultget/internal/registry"
	"github.com/vaultget/vaultget/internal/vault"
)

type setOptions struct {
	repo        string
	tag         string
	postInstall string
}

func SetCommand() *cobra.Command {
	o := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set <plugin-id>",
		Short: "Configure where a plugin is downloaded from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&o.repo, "repo", "", "github repository in owner/repository form")
	flags.StringVar(&o.tag, "tag", "", "release tag to download (empty: the installed version)")
	flags.StringVar(&o.postInstall, "post-install", "", "command to run in the plugin folder after install")

	return cmd
}

func (o *setOptions) run(ctx context.Context, cmd *cobra.Command, id string) error {
	vaultDir, err := resolveVault()
	if err != nil {
		return err
	}

	settings, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	cfg := settings.FindOrCreate(id)

	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.Repo = o.repo
		if cfg.Repo == "" {
			// cleared: fall back to the community registry's guess
			cfg.Repo = registry.NewClient().Repos(ctx)[id]
		}
	}
	if flags.Changed("tag") {
		cfg.ReleaseTag = o.tag
	}
	if flags.Changed("post-install") {
		cfg.PostInstall = o.postInstall
	}

	if err := settings.Save(); err != nil {
		return err
	}

	if findInstalled(vault.Scan(vaultDir), id) == nil {
		pp.Println(pp.YellowString("plugin %s is not installed in this vault (config saved anyway)", id).GetForStdout())
	}

	repoRef := cfg.Repo
	if repoRef == "" {
		repoRef = "-"
	}
	tag := cfg.ReleaseTag
	if tag == "" {
		tag = "(installed version)"
	}
	pp.Printf("updated %s: repo=%s tag=%s\n", cfg.ID, repoRef, tag)
	if cfg.PostInstall != "" {
		pp.Printf("post-install hook: %s\n", shells.Quote(cfg.PostInstall))
	}

	return nil
}
