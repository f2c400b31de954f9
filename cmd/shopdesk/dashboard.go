package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/config"
	"github.com/adroitalarm/shopdesk/internal/tui"
	"github.com/adroitalarm/shopdesk/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the live admin dashboard",
		Long: `Open a full-screen dashboard with Orders, Reviews, Payments and Refunds tabs.
Each tab refreshes in the background; logs go to logging.file while it runs.
The dashboard closes as soon as the server rejects the session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			restore, err := redirectLogging(cfg)
			if err != nil {
				return err
			}
			defer restore()

			return withApp(cmd, func(ctx context.Context, a *app) error {
				d := tui.NewDashboard(tui.Sources{
					Orders:     a.client.Orders(),
					Reviews:    a.client.Reviews(),
					Backend:    a.client,
					Fetch:      a.fetchOptions(),
					PageLength: a.cfg.Grid.PageLength,
				}, dashboardIntervals(a.cfg.Refresh))

				err := d.Run(ctx,
					tui.WithLogger(a.logger),
					tui.WithTheme(themes.ByName(theme)),
					tui.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
					tui.WithStop(a.session.Done()),
				)
				if err != nil {
					return err
				}
				if a.session.Expired() {
					return errSessionExpired
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin)")
	return cmd
}

// dashboardIntervals maps the refresh settings onto the tabs. Refunds
// share the payments interval.
func dashboardIntervals(r config.RefreshConfig) tui.Intervals {
	return tui.Intervals{
		Orders:        r.Orders,
		Reviews:       r.Reviews,
		Payments:      r.Payments,
		Refunds:       r.Payments,
		Notifications: r.Notifications,
		RunTimeout:    r.RunTimeout,
	}
}
