package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
)

func reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Moderate product reviews",
	}

	cmd.AddCommand(listReviewsCmd())
	cmd.AddCommand(moderateReviewCmd("approve", "Approve", "Review approved successfully"))
	cmd.AddCommand(moderateReviewCmd("reject", "Reject", "Review rejected successfully"))

	return cmd
}

func listReviewsCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				return listCommand(ctx, cmd, a, flags, "Reviews", listing.ReviewColumns,
					listing.Loader[model.Review, listing.ReviewRecord]{
						Source: a.client.Reviews(),
						Format: listing.FormatReviews,
					},
					cli.StatusColumns{6: true})
			})
		},
	}

	flags.register(cmd, listing.DimStatus)
	return cmd
}

func moderateReviewCmd(use, verb, success string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <review-id>",
		Short: verb + " a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.prompter.Confirm(ctx, fmt.Sprintf("%s review %s?", verb, args[0])); err != nil {
					return err
				}
				run := a.client.ApproveReview
				if use == "reject" {
					run = a.client.RejectReview
				}
				if err := run(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(success))
				return nil
			})
		},
	}
}
