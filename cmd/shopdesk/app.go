package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/api"
	"github.com/adroitalarm/shopdesk/internal/auth"
	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/config"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

const (
	defaultRetryDelay    = 250 * time.Millisecond
	defaultRetryMaxDelay = 5 * time.Second
)

// errNotLoggedIn is returned by commands that need a session.
var errNotLoggedIn = common.NewUserError("Not logged in. Run 'shopdesk login' first.", common.ErrMissingToken)

var errSessionExpired = common.NewUserError("Session expired. Run 'shopdesk login' to sign in again.", common.ErrUnauthorized)

// app wires the configuration, local storage, credentials and API client
// for one command invocation.
type app struct {
	cfg      *config.Config
	store    *storage.SQLiteStorage
	creds    *auth.DualStore
	session  *auth.Session
	client   *api.Client
	prompter *cli.Prompter
	logger   *slog.Logger
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default()

	if cfg.Database.Path != storage.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	store, err := storage.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	creds := auth.NewDualStore(auth.NewCookieJar(cfg.Credentials.CookiePath), store.LocalStorage(), logger)
	session := auth.NewSession(creds, nil, logger)

	client, err := api.NewClient(cfg.API.BaseURL, creds,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
		api.WithUnauthorizedHandler(func() {
			session.Expire(context.WithoutCancel(ctx))
		}),
		api.WithRetry(common.RetryOptions{
			MaxAttempts:  cfg.API.MaxAttempts,
			InitialDelay: defaultRetryDelay,
			MaxDelay:     defaultRetryMaxDelay,
			Multiplier:   2,
		}),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		prompter.AssumeYes = true
	}

	return &app{
		cfg:      cfg,
		store:    store,
		creds:    creds,
		session:  session,
		client:   client,
		prompter: prompter,
		logger:   logger,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close storage", "error", err)
	}
}

// requireLogin fails fast when no admin credentials are stored.
func (a *app) requireLogin(ctx context.Context) error {
	creds, err := a.creds.Get(ctx)
	if err != nil {
		return err
	}
	if creds.Token == "" {
		return errNotLoggedIn
	}
	if !creds.IsAdmin() {
		return common.NewUserError("Access denied. Admin privileges required.", common.ErrAccessDenied)
	}
	return nil
}

// fetchOptions are the fan-out limits for paged listings.
func (a *app) fetchOptions() listing.FetchOptions {
	return listing.FetchOptions{
		MaxConcurrency: a.cfg.API.MaxConcurrency,
		PageTimeout:    a.cfg.API.PageTimeout,
		Logger:         a.logger,
	}
}

// sessionError rewrites errors caused by an expired session.
func (a *app) sessionError(err error) error {
	if err == nil || errors.Is(err, errSessionExpired) {
		return err
	}
	if a.session.Expired() || errors.Is(err, common.ErrUnauthorized) {
		return fmt.Errorf("%w: %w", errSessionExpired, err)
	}
	return err
}

// withApp runs fn with a ready app and a signed-in session.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	return a.sessionError(fn(ctx, a))
}
