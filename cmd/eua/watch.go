package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dm/eua-go/internal/engine"
	"github.com/dm/eua-go/internal/tui"
)

func newWatchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [uri]",
		Short: "Watch the upgrade status interactively",
		Long: `Poll the upgrade status every --interval and show it in a terminal view.

Keys: r refresh, tab switch table, / search, 1-9 sort, ←→ page, ? help, q quit.`,
		Example: `  eua watch http://localhost:9200
  eua watch --interval 1m --insecure https://elastic:changeme@es:9200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			// The alternate screen owns the terminal; log lines would corrupt it.
			setupLogging(cfg, io.Discard)

			c, err := newClient(cfg)
			if err != nil {
				return err
			}

			app := tui.NewApp(engine.NewAggregator(c), cfg.Cloud, cfg.ApmIndexPatterns, cfg.PollInterval())
			_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			logrus.SetOutput(cmd.ErrOrStderr())
			return err
		},
	}
	cmd.Flags().StringVar(&opts.interval, "interval", "", "poll interval (default 30s)")
	return cmd
}
