package auth

import (
	"context"
	"log/slog"
	"sync"
)

// Session tracks whether the stored credentials are still accepted by the
// server.
type Session struct {
	store    CredentialStore
	onExpire func()
	logger   *slog.Logger
	mu       sync.Mutex
	expired  bool
	done     chan struct{}
}

// NewSession creates a session. onExpire may be nil.
func NewSession(store CredentialStore, onExpire func(), logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:    store,
		onExpire: onExpire,
		logger:   logger.With("component", "session"),
		done:     make(chan struct{}),
	}
}

// Expire clears the credentials and runs the expiry callback. Only the first
// call after a Reset has any effect.
func (s *Session) Expire(ctx context.Context) {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	close(s.done)
	s.mu.Unlock()

	s.logger.Warn("session expired; sign in again")
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("failed to clear credentials", "error", err)
	}
	if s.onExpire != nil {
		s.onExpire()
	}
}

// Expired reports whether Expire ran since the last Reset.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// Done is closed when the session expires. A Reset hands out a fresh
// channel to later callers.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Reset re-arms the session after a successful login.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.expired {
		s.expired = false
		s.done = make(chan struct{})
	}
	s.mu.Unlock()
}
