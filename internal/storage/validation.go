// Package storage persists local client state in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Argument errors returned before any query runs.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// checkArgs fails on a nil or finished context, then on the first blank
// value among named.
func checkArgs(ctx context.Context, named ...string) error {
	if ctx == nil {
		return ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := 0; i+1 < len(named); i += 2 {
		if strings.TrimSpace(named[i+1]) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyString, named[i])
		}
	}
	return nil
}

func checkDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
