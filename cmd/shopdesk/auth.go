package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/auth"
	"github.com/adroitalarm/shopdesk/internal/cli"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an admin account",
		Long: `Sign in to the back office. Only admin accounts are accepted. The session
token is kept in the cookie file and the local database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if email == "" {
				if email, err = a.prompter.Ask(ctx, "Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompter.AskSecret(ctx, "Password"); err != nil {
					return err
				}
			}

			creds, err := auth.Login(ctx, a.client, a.creds, email, password)
			if err != nil {
				return err
			}
			a.session.Reset()
			a.client.ResetSession()

			a.logger.Info("Signed in", "user_id", creds.UserID)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged in successfully"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := auth.Logout(ctx, a.creds); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			creds, err := a.creds.Get(ctx)
			if err != nil {
				return err
			}
			if creds.Token == "" {
				return errNotLoggedIn
			}
			role := "user"
			if creds.IsAdmin() {
				role = "admin"
			}
			return cli.PrintKeyValues(cmd.OutOrStdout(), [][2]string{
				{"User ID", creds.UserID},
				{"Role", role},
				{"Cookie file", a.cfg.Credentials.CookiePath},
				{"Database", a.store.Path()},
			})
		},
	}
}
