package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
)

func paymentsCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "payments",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Payments", listing.PaymentColumns,
					listing.Loader[model.Payment, listing.PaymentRecord]{
						Source: listing.SinglePage(a.client.Payments),
						Format: listing.FormatPayments,
					},
					cli.StatusColumns{6: true, 7: true})
			})
		},
	}

	flags.register(cmd, listing.DimPaymentStatus, listing.DimOrderStatus, listing.DimPaymentMethod)
	return cmd
}

func refundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "refunds",
		Aliases: []string{"cancellations"},
		Short:   "Review cancellation and refund requests",
	}

	cmd.AddCommand(listRefundsCmd())
	cmd.AddCommand(decideRefundCmd(true))
	cmd.AddCommand(decideRefundCmd(false))
	cmd.AddCommand(refundStatusCmd())

	return cmd
}

func listRefundsCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cancellation requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Refunds", listing.RefundColumns,
					listing.Loader[model.Cancellation, listing.RefundRecord]{
						Source: listing.SinglePage(a.client.Cancellations),
						Format: listing.FormatRefunds,
					},
					cli.StatusColumns{7: true})
			})
		},
	}

	flags.register(cmd, listing.DimStatus, listing.DimPaymentMethod)
	return cmd
}

func decideRefundCmd(approve bool) *cobra.Command {
	use, verb, notes, success := "reject", "Reject", model.RejectRefundNote, "Refund request rejected"
	if approve {
		use, verb, notes, success = "approve", "Approve", model.ApproveRefundNote, "Refund request approved"
	}

	cmd := &cobra.Command{
		Use:   use + " <cancellation-id>",
		Short: verb + " a cancellation request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.prompter.Confirm(ctx, fmt.Sprintf("%s cancellation request %s?", verb, args[0])); err != nil {
					return err
				}
				if err := a.client.DecideCancellation(ctx, args[0], approve, notes); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(success))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", notes, "admin notes sent with the decision")
	return cmd
}

func refundStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <refund-id>",
		Short: "Show a processed refund's status at the payment provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				status, err := a.client.RefundStatus(ctx, args[0])
				if err != nil {
					return err
				}
				return cli.PrintKeyValues(cmd.OutOrStdout(), [][2]string{
					{"Refund", status.RefundID},
					{"Status", cli.StatusStyle(status.Status).Render(status.Status)},
					{"Amount", format.Currency(status.Amount.String()) + " " + status.Currency},
					{"Created", format.Date(status.CreatedAt)},
				})
			})
		},
	}
}
