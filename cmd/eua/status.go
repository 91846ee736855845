package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dm/eua-go/internal/engine"
	"github.com/dm/eua-go/internal/report"
)

func newStatusCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [uri]",
		Short: "Print the upgrade status once",
		Long: `Print the upgrade status of the cluster once and exit.

Exit codes: 0 ready, 2 not ready (critical deprecations), 1 on error.`,
		Example: `  eua status http://localhost:9200
  eua status --output json --apm-index 'apm-*' --apm-index 'observability-*' https://es:9200
  eua status --config eua.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			setupLogging(cfg, cmd.ErrOrStderr())

			c, err := newClient(cfg)
			if err != nil {
				return err
			}

			logrus.Debugf("fetching upgrade status from %s", c.BaseURL())
			status, err := engine.NewAggregator(c).GetUpgradeStatus(cmd.Context(), cfg.Cloud, cfg.ApmIndexPatterns)
			if err != nil {
				return err
			}

			if err := report.Render(cmd.OutOrStdout(), status, report.Format(cfg.Output)); err != nil {
				return err
			}
			if !status.ReadyForUpgrade {
				return errNotReady
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format: text or json (default text)")
	return cmd
}
