package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// Prompter asks the operator questions on a terminal.
type Prompter struct {
	reader *LineReader
	writer io.Writer
	// inputFD is the descriptor used for hidden input, or -1.
	inputFD int
	// AssumeYes answers every confirmation with yes.
	AssumeYes bool
}

// NewPrompter reads from r and writes prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	fd := -1
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{
		reader:  NewLineReader(r),
		writer:  w,
		inputFD: fd,
	}
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label+":")); err != nil {
		return "", err
	}
	return p.reader.ReadLine(ctx)
}

// AskSecret reads a value without echo when attached to a terminal.
func (p *Prompter) AskSecret(ctx context.Context, label string) (string, error) {
	if p.inputFD < 0 {
		return p.Ask(ctx, label)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label+":")); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", ErrInputCancelled
	}
	b, err := term.ReadPassword(p.inputFD)
	_, _ = fmt.Fprintln(p.writer)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(b), nil
}

// Confirm asks a y/n question. Anything other than y or yes declines,
// including closed input.
// A declined confirmation returns common.ErrConfirmationDeclined.
func (p *Prompter) Confirm(ctx context.Context, question string) error {
	if p.AssumeYes {
		return nil
	}
	answer, err := p.Ask(ctx, question+" [y/N]")
	if errors.Is(err, io.EOF) {
		return common.ErrConfirmationDeclined
	}
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return nil
	default:
		return common.ErrConfirmationDeclined
	}
}
