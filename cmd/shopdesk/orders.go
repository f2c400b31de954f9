package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
)

func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List and manage orders",
	}

	cmd.AddCommand(listOrdersCmd())
	cmd.AddCommand(showOrderCmd())
	cmd.AddCommand(updateOrderCmd())
	cmd.AddCommand(deleteOrderCmd())

	return cmd
}

func listOrdersCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every order",
		Long: `Fetch every page of orders and print them. Filters combine with AND; the
date range is inclusive and compares calendar days.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Orders", listing.OrderColumns,
					listing.Loader[model.Order, listing.OrderRecord]{
						Source: a.client.Orders(),
						Format: listing.FormatOrders,
					},
					cli.StatusColumns{4: true, 5: true})
			})
		},
	}

	flags.register(cmd, listing.DimStatus, listing.DimPaymentStatus, listing.DimPaymentMethod)
	return cmd
}

func showOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				summary, err := a.client.OrderSummary(ctx, args[0])
				if err != nil {
					return err
				}
				return printOrderSummary(cmd, summary)
			})
		},
	}
}

func printOrderSummary(cmd *cobra.Command, s model.OrderSummary) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, cli.FormatTitle("Order "+s.OrderID.String()))
	if err := cli.PrintKeyValues(w, [][2]string{
		{"Customer", format.OrNA(s.Customer.Name)},
		{"Email", format.OrNA(s.Customer.Email)},
		{"Phone", format.OrNA(s.Customer.Phone)},
		{"Status", cli.StatusStyle(s.OrderStatus).Render(s.OrderStatus)},
		{"Tracking", format.OrNA(s.TrackStatus)},
		{"Payment", cli.StatusStyle(s.PaymentStatus).Render(s.PaymentStatus)},
		{"Total", format.Currency(s.TotalPrice.String())},
		{"Created", format.Date(s.CreatedAt)},
		{"Updated", format.Date(s.UpdatedAt)},
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(s.Items))
	for _, it := range s.Items {
		rows = append(rows, []string{
			it.ProductName,
			it.Quantity.String(),
			format.Currency(it.Price.String()),
			format.Currency(it.Total.String()),
		})
	}
	fmt.Fprintln(w)
	return cli.PrintTable(w, []string{"Product", "Qty", "Price", "Total"}, rows, nil)
}

func updateOrderCmd() *cobra.Command {
	var status, track string

	cmd := &cobra.Command{
		Use:   "update <order-id>",
		Short: "Change an order's status and tracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := orderUpdate(status, track)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.client.UpdateOrder(ctx, args[0], update); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Order updated successfully"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "new status ("+strings.Join(model.OrderStatuses, ", ")+")")
	cmd.Flags().StringVar(&track, "track", "", "tracking status or number")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

// orderUpdate validates the requested status.
func orderUpdate(status, track string) (model.OrderUpdate, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !slices.Contains(model.OrderStatuses, status) {
		return model.OrderUpdate{}, common.NewUserError(
			fmt.Sprintf("Invalid status %q; choose one of: %s", status, strings.Join(model.OrderStatuses, ", ")),
			common.ErrValidation)
	}
	return model.OrderUpdate{OrderStatus: status, TrackStatus: strings.TrimSpace(track)}, nil
}

func deleteOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <order-id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.prompter.Confirm(ctx, fmt.Sprintf("Delete order %s?", args[0])); err != nil {
					return err
				}
				if err := a.client.DeleteOrder(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Order deleted successfully"))
				return nil
			})
		},
	}
}
