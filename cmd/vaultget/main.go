package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ImSingee/go-ex/ee"
	"github.com/ImSingee/go-ex/pp"
	"github.com/spf13/cobra"

	"github.com/vaultget/vaultget/internal/config"
	"github.com/vaultget/vaultget/internal/lib/xlog"
	"github.com/vaultget/vaultget/internal/plugins"
)

const help = `Usage:
  vaultget list
  vaultget set <plugin-id> --repo <owner/repository> [--tag <tag>]
  vaultget install <plugin-id>... | --all
  vaultget tags <plugin-id>
`

func main() {
	app := &cobra.Command{
		Use:           "vaultget",
		Long:          help,
		Version:       getVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.AddCommand(plugins.Commands()...)

	// for global flags
	app.PersistentFlags().SortFlags = false
	app.PersistentFlags().StringP("root", "R", "", "change command working directory")
	app.PersistentFlags().StringVar(&plugins.VaultDir, "vault", "", "obsidian vault directory (default: found from the working directory)")
	app.PersistentFlags().BoolVar(&config.Debug, "debug", false, "print additional debug information")
	app.PersistentFlags().BoolP("quiet", "q", false, "quiet mode (hide any output)")
	app.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		if quiet {
			if null, _ := os.Open(os.DevNull); null != nil {
				os.Stdout = null
				os.Stderr = null
			}

			pp.Stdout.ChangeWriter(io.Discard)
			pp.Stderr.ChangeWriter(io.Discard)

			slog.SetDefault(xlog.DisabledLogger)
		}

		if !quiet { // setup logger
			if config.Debug {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		}

		if root, _ := app.PersistentFlags().GetString("root"); root != "" {
			slog.Debug("Change working directory", "root", root)
			err := os.Chdir(root)
			if err != nil {
				return ee.Wrapf(err, "cannot change working directory to %s", root)
			}
		}

		return nil
	}

	// run!
	err := app.Execute()
	if err != nil {
		if !ee.Is(err, ee.Phantom) {
			l("Error: %v", err)
		}

		os.Exit(1)
	}
}

func l(msg string, args ...any) {
	s := msg
	if len(args) != 0 {
		s = fmt.Sprintf(msg, args...)
	}

	_, _ = os.Stderr.Write([]byte("vaultget - " + strings.TrimSpace(s) + "\n"))
}
