package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when the context ends before a line arrives.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads lines from an io.Reader without blocking past context
// cancellation. Input is only read on demand, so a hidden-input prompt can
// share the terminal between calls. A line that arrives after a cancelled
// read is handed to the next one.
type LineReader struct {
	src     *bufio.Reader
	pending chan line
	mu      sync.Mutex
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{src: bufio.NewReader(r)}
}

// next returns the channel of the outstanding read, starting one if needed.
func (r *LineReader) next() chan line {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		ch := make(chan line, 1)
		r.pending = ch
		go func() {
			text, err := r.src.ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && text != "") {
				ch <- line{err: err}
				return
			}
			ch <- line{text: strings.TrimSpace(text)}
		}()
	}
	return r.pending
}

// ReadLine returns the next line with surrounding space trimmed. A final
// line without a newline is returned without error.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	ch := r.next()
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l := <-ch:
		r.mu.Lock()
		r.pending = nil
		r.mu.Unlock()
		return l.text, l.err
	}
}
