package installer

import (
	"context"
	"time"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/go-ex/mr"
	"golang.org/x/sync/errgroup"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/lib/tl"
	"github.com/vaultget/vaultget/internal/vault"
)

const (
	DefaultConcurrency = 4
	DefaultTimeout     = 2 * time.Minute
)

type BulkOptions struct {
	Concurrency int           // max parallel installs (DefaultConcurrency when <= 0)
	Timeout     time.Duration // per-plugin timeout (DefaultTimeout when <= 0)
	Progress    bool          // render a live task list
}

// InstallAll installs every given plugin config, at most Concurrency at a
// time, each under its own timeout. Canceling ctx stops pending installs.
//
// The returned slice matches cfgs by index; failures are recorded in the
// results, never returned as an error.
func (ins *Installer) InstallAll(ctx context.Context, cfgs []*config.PluginConfig, installed []*vault.PluginInfo, opts BulkOptions) []*InstallResult {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	byID := make(map[string]*vault.PluginInfo, len(installed))
	for _, info := range installed {
		if id := info.ID(); id != "" {
			byID[id] = info
		}
	}

	results := make([]*InstallResult, len(cfgs))

	installOne := func(ctx context.Context, i int) *InstallResult {
		itemCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		r := ins.Install(itemCtx, cfgs[i], byID[cfgs[i].ID])
		results[i] = r

		return r
	}

	if opts.Progress {
		tasks := mr.Map(cfgs, func(cfg *config.PluginConfig, i int) *tl.Task {
			return &tl.Task{
				Title: cfg.ID,
				Run: func(ctx context.Context, callback tl.TaskCallback) error {
					r := installOne(ctx, i)

					if ee.Is(r.Err, ErrNoRepo) {
						callback.Skip("github repo is required")
						return nil
					}

					return r.Err
				},
			}
		})

		// Run blocks until every task is done, so results is complete
		// (and no longer written to) when it returns
		_ = tl.New(tasks, tl.WithConcurrency(opts.Concurrency)).Run(ctx)
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Concurrency)

		for i := range cfgs {
			i := i
			g.Go(func() error {
				installOne(ctx, i)
				return nil
			})
		}

		_ = g.Wait()
	}

	return results
}
