package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/notify"
	"github.com/adroitalarm/shopdesk/internal/refresh"
)

var notificationColumns = []string{"ID", "Type", "Status", "Order", "Customer", "Message", "Amount", "Received"}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Read and manage admin notifications",
	}

	cmd.AddCommand(listNotificationsCmd())
	cmd.AddCommand(notificationActionCmd("read <notification-id>", "Mark a notification as read", "Notification marked as read", "",
		func(ctx context.Context, a *app, id string) error { return a.client.MarkNotificationRead(ctx, id) }))
	cmd.AddCommand(notificationActionCmd("read-all", "Mark every notification as read", "All notifications marked as read", "",
		func(ctx context.Context, a *app, _ string) error { return a.client.MarkAllNotificationsRead(ctx) }))
	cmd.AddCommand(notificationActionCmd("delete <notification-id>", "Delete a notification", "Notification deleted", "Delete notification %s?",
		func(ctx context.Context, a *app, id string) error { return a.client.DeleteNotification(ctx, id) }))
	cmd.AddCommand(notificationActionCmd("clear", "Delete every notification", "Notifications cleared", "Delete all notifications?",
		func(ctx context.Context, a *app, _ string) error { return a.client.ClearNotifications(ctx) }))
	cmd.AddCommand(watchNotificationsCmd())

	return cmd
}

func listNotificationsCmd() *cobra.Command {
	var unreadOnly bool
	var output, file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				items, err := a.client.Notifications(ctx)
				if err != nil {
					return err
				}
				return writeRows(cmd.OutOrStdout(), output, file, "Notifications", notificationColumns,
					notificationRows(items, unreadOnly), cli.StatusColumns{2: true})
			})
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, xlsx)")
	cmd.Flags().StringVar(&file, "file", "", "xlsx output path")
	return cmd
}

func notificationRows(items []model.Notification, unreadOnly bool) [][]string {
	rows := make([][]string, 0, len(items))
	for _, n := range items {
		if unreadOnly && !n.Unread() {
			continue
		}
		var data model.NotificationData
		if n.Data != nil {
			data = *n.Data
		}
		amount := ""
		if data.Amount != "" {
			amount = format.Currency(data.Amount.String())
		}
		rows = append(rows, []string{
			n.NotificationID.String(),
			format.Capitalize(n.Type),
			n.Status,
			data.OrderID.String(),
			data.CustomerName,
			data.Message,
			amount,
			format.Date(n.CreatedAt),
		})
	}
	return rows
}

func notificationActionCmd(use, short, success, confirm string, run func(ctx context.Context, a *app, id string) error) *cobra.Command {
	positional := cobra.NoArgs
	if len(use) > 0 && use[len(use)-1] == '>' {
		positional = cobra.ExactArgs(1)
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) > 0 {
				id = args[0]
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if confirm != "" {
					q := confirm
					if id != "" {
						q = fmt.Sprintf(confirm, id)
					}
					if err := a.prompter.Confirm(ctx, q); err != nil {
						return err
					}
				}
				if err := run(ctx, a, id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(success))
				return nil
			})
		},
	}
}

func watchNotificationsCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the unread count and alert when it rises",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if interval <= 0 {
					interval = a.cfg.Refresh.Notifications
				}
				out := cmd.OutOrStdout()
				w := notify.NewWatcher(a.client, notificationAlert(out), nil, a.logger,
					refresh.WithInterval(interval),
					refresh.WithRunTimeout(a.cfg.Refresh.RunTimeout))
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer w.Stop()

				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Watching notifications every %s. Press Ctrl+C to stop.", interval)))
				<-ctx.Done()
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from refresh.notifications)")
	return cmd
}

func notificationAlert(w io.Writer) notify.AlertFunc {
	return func(prev, cur int) {
		fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("%s  %d new notification(s), %d unread",
			time.Now().Format(time.TimeOnly), cur-prev, cur)))
	}
}
