package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/atomic"
)

// CookieTTL matches the one-day lifetime of the browser cookies.
const CookieTTL = 24 * time.Hour

type cookieFile struct {
	ExpiresAt time.Time         `json:"expires_at"`
	Values    map[string]string `json:"values"`
}

// CookieJar is a Backend stored as a JSON file that expires CookieTTL after
// its last write.
type CookieJar struct {
	now  func() time.Time
	path string
	ttl  time.Duration
	mu   sync.Mutex
}

// NewCookieJar returns a jar at path.
func NewCookieJar(path string) *CookieJar {
	return &CookieJar{path: path, ttl: CookieTTL, now: time.Now}
}

// Path returns the file location.
func (j *CookieJar) Path() string {
	return j.path
}

// Load returns the stored values. A missing or expired file is empty.
func (j *CookieJar) Load(_ context.Context) (map[string]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, err := j.read()
	if err != nil {
		return nil, err
	}
	return f.Values, nil
}

// Save merges values into the jar and renews its expiry.
func (j *CookieJar) Save(_ context.Context, values map[string]string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := j.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		f.Values[k] = v
	}
	f.ExpiresAt = j.now().Add(j.ttl)
	return j.write(f)
}

// Delete removes keys. The file is removed once it holds nothing.
func (j *CookieJar) Delete(_ context.Context, keys ...string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := j.read()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		clear(f.Values)
	}
	for _, k := range keys {
		delete(f.Values, k)
	}
	if len(f.Values) == 0 {
		if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing cookie file: %w", err)
		}
		return nil
	}
	return j.write(f)
}

func (j *CookieJar) read() (cookieFile, error) {
	empty := cookieFile{Values: map[string]string{}}

	data, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("reading cookie file: %w", err)
	}

	var f cookieFile
	if err := json.Unmarshal(data, &f); err != nil {
		return empty, fmt.Errorf("parsing cookie file %s: %w", j.path, err)
	}
	if f.Values == nil || !j.now().Before(f.ExpiresAt) {
		return empty, nil
	}
	return f, nil
}

func (j *CookieJar) write(f cookieFile) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return fmt.Errorf("creating cookie directory: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cookie file: %w", err)
	}
	if err := atomic.WriteFile(j.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}
	if err := os.Chmod(j.path, 0600); err != nil {
		return fmt.Errorf("restricting cookie file: %w", err)
	}
	return nil
}
