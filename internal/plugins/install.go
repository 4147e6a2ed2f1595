package plugins

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/go-ex/mr"
	"github.com/ImSingee/go-ex/pp"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/installer"
	"github.com/vaultget/vaultget/internal/lib/glob"
	"github.com/vaultget/vaultget/internal/vault"
)

type installOptions struct {
	all         bool
	concurrency int
	timeout     time.Duration
	noProgress  bool

	baseURL string // release host override, for tests
}

func InstallCommand() *cobra.Command {
	o := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install [<plugin-id|glob> ...]",
		Short: "Download and install plugins from their github releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.all && len(args) == 0 {
				return ee.New("specify plugin ids (or globs), or use --all")
			}
			if o.all && len(args) > 0 {
				return ee.New("cannot combine --all with plugin ids")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return o.run(ctx, args)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVar(&o.all, "all", false, "install every configured plugin")
	flags.IntVar(&o.concurrency, "concurrency", installer.DefaultConcurrency, "max parallel installs")
	flags.DurationVar(&o.timeout, "timeout", installer.DefaultTimeout, "per-plugin timeout")
	flags.BoolVar(&o.noProgress, "no-progress", false, "do not render the live progress list")

	return cmd
}

func (o *installOptions) run(ctx context.Context, args []string) error {
	vaultDir, err := resolveVault()
	if err != nil {
		return err
	}

	settings, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	installed := vault.Scan(vaultDir)

	var cfgs []*config.PluginConfig
	if o.all {
		if len(settings.Plugins) == 0 {
			pp.Println("No plugins configured.")
			return nil
		}
		cfgs = settings.Plugins
	} else {
		matcher, err := glob.NewMatcher(args...)
		if err != nil {
			return err
		}

		cfgs = mr.Filter(settings.Plugins, func(cfg *config.PluginConfig, _ int) bool {
			return matcher.Match(cfg.ID)
		})
		if len(cfgs) == 0 {
			for _, arg := range args {
				if !glob.IsPattern(arg) && findInstalled(installed, arg) != nil {
					return ee.Errorf("plugin %s is installed but not configured yet (run `vaultget list` to pick it up)", arg)
				}
			}
			return ee.Errorf("no configured plugins match %s (run `vaultget list` first to pick up installed plugins)", matcher)
		}
	}

	ins := installer.New(vaultDir)
	if o.baseURL != "" {
		ins.BaseURL = o.baseURL
	}

	results := ins.InstallAll(ctx, cfgs, installed, installer.BulkOptions{
		Concurrency: o.concurrency,
		Timeout:     o.timeout,
		Progress:    !o.noProgress && !config.Debug,
	})

	return o.report(results)
}

func (o *installOptions) report(results []*installer.InstallResult) error {
	hardFailures := 0

	for _, r := range results {
		if r == nil { // canceled before this plugin started
			continue
		}

		switch {
		case ee.Is(r.Err, installer.ErrNoRepo):
			pp.Println(pp.YellowString("%s: GitHub repo is required to install this plugin.", r.PluginID).GetForStdout())
		case r.Err != nil:
			hardFailures++
			pp.RedPrintln(r.PluginID+":", "install failed:", r.Err.Error())
		default:
			if !o.all {
				pp.Println("Installed", r.PluginID, "("+r.Tag+")")
			}
			if r.HookErr != nil {
				pp.Println(pp.YellowString("%s: post-install hook failed: %v", r.PluginID, r.HookErr).GetForStdout())
			}
		}
	}

	if o.all {
		pp.Printf("Downloaded %d out of %d plugins successfully.\n", installer.Succeeded(results), len(results))
		return nil
	}

	if hardFailures > 0 {
		return ee.Phantom
	}

	return nil
}
