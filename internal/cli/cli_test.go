package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adroitalarm/shopdesk/internal/common"
)

func TestLineReader_ReadLine(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
		expectError   bool
	}{
		{name: "successful read", input: "test input\n", expectedValue: "test input"},
		{name: "read with extra whitespace", input: "  test input  \n", expectedValue: "test input"},
		{name: "empty line", input: "\n", expectedValue: ""},
		{name: "final line without newline", input: "yes", expectedValue: "yes"},
		{name: "eof", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nbr := NewLineReader(strings.NewReader(tt.input))
			result, err := nbr.ReadLine(context.Background())
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedValue, result)
		})
	}
}

func TestLineReader_ContextCancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		nbr := NewLineReader(strings.NewReader("line\n"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := nbr.ReadLine(ctx)
		assert.Equal(t, ErrInputCancelled, err)
	})

	t.Run("cancellation during read", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer func() { _ = pr.Close() }()
		defer func() { _ = pw.Close() }()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := NewLineReader(pr).ReadLine(ctx)
		assert.Equal(t, ErrInputCancelled, err)
	})
}

func TestLineReader_SequentialLines(t *testing.T) {
	r := NewLineReader(strings.NewReader("first\n second \nlast"))
	ctx := context.Background()

	for _, want := range []string{"first", "second", "last"} {
		got, err := r.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"y\n", nil},
		{"YES\n", nil},
		{"n\n", common.ErrConfirmationDeclined},
		{"\n", common.ErrConfirmationDeclined},
		{"maybe\n", common.ErrConfirmationDeclined},
		{"", common.ErrConfirmationDeclined},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			err := p.Confirm(context.Background(), "Delete order 42?")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, out.String(), "Delete order 42? [y/N]")
		})
	}
}

func TestPrompter_AssumeYesSkipsInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)
	p.AssumeYes = true
	require.NoError(t, p.Confirm(context.Background(), "Clear all?"))
	assert.Empty(t, out.String())
}

func TestPrompter_AskSecretFallsBackToLine(t *testing.T) {
	p := NewPrompter(strings.NewReader("hunter22\n"), io.Discard)
	v, err := p.AskSecret(context.Background(), "Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter22", v)
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintTable(&out, []string{"ID", "Status"}, [][]string{{"1", "pending"}, {"2", "delivered"}}, StatusColumns{1: true}))
	s := out.String()
	assert.Contains(t, s, "Status")
	assert.Contains(t, s, "delivered")
	assert.Contains(t, s, "2 record(s)")

	out.Reset()
	require.NoError(t, PrintTable(&out, []string{"ID"}, nil, nil))
	assert.Contains(t, out.String(), "No records found.")
}

func TestPrintKeyValues(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintKeyValues(&out, [][2]string{{"Order", "42"}, {"Status", "pending"}}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "42")
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, 3, "Fetching daily reports")
	p.Set(1, 3)
	p.Set(2, 4)
	p.Finish()
	assert.Contains(t, out.String(), "Fetching daily reports")
}

func TestInterruptHandler(t *testing.T) {
	var out bytes.Buffer
	h := NewInterruptHandler(&out, "Partial export was discarded.")
	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()

	assert.False(t, h.WasInterrupted())
	h.trigger()
	h.trigger()
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "Interrupted."))
	assert.Contains(t, out.String(), "Partial export was discarded.")

	stop()
	<-ctx.Done()
}

func TestStatusStyleAndBadge(t *testing.T) {
	assert.Equal(t, SuccessStyle.GetForeground(), StatusStyle("Delivered").GetForeground())
	assert.Equal(t, ErrorStyle.GetForeground(), StatusStyle("rejected").GetForeground())
	assert.Contains(t, Badge("Unread", 3), "Unread 3")
}
