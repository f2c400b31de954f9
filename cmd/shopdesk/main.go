package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/config"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shopdesk",
		Short: "🛒 Shop back-office admin console",
		Long: `shopdesk manages the shop back office from the terminal: orders, reviews,
payments, refunds, the catalog and sales reports, with a live dashboard.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/shopdesk/config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	root.PersistentFlags().String("api-url", "", "back-office API base URL")
	root.PersistentFlags().BoolP("yes", "y", false, "answer yes to every confirmation")

	_ = viper.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", root.PersistentFlags().Lookup("api-url"))

	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(whoamiCmd())
	root.AddCommand(ordersCmd())
	root.AddCommand(reviewsCmd())
	root.AddCommand(paymentsCmd())
	root.AddCommand(refundsCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(productsCmd())
	root.AddCommand(usersCmd())
	root.AddCommand(notificationsCmd())
	root.AddCommand(reportsCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		if errors.Is(err, common.ErrConfirmationDeclined) {
			fmt.Fprintln(os.Stderr, cli.FormatWarning("Cancelled."))
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(common.Describe(err)))
		slog.Debug("command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "shopdesk"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SHOPDESK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(os.Stderr); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(w io.Writer) error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	logger, err := common.NewLogger(w, level, viper.GetString("logging.format"))
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// redirectLogging sends logs to the configured file while a full-screen
// view owns the terminal. The returned func restores stderr logging.
func redirectLogging(cfg *config.Config) (func(), error) {
	if cfg.Logging.File == "" {
		return func() {}, setupLogging(io.Discard)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		_ = setupLogging(os.Stderr)
		_ = f.Close()
	}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shopdesk %s\n", version)
		},
	}
}
