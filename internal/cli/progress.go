package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// Progress reports completion of a fixed number of steps.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a bar for total steps writing to w.
func NewProgress(w io.Writer, total int, description string) *Progress {
	return &Progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)}
}

// Set moves the bar to done of total, resizing it if total changed. It is
// shaped for report.WithProgress.
func (p *Progress) Set(done, total int) {
	if int64(total) != p.bar.GetMax64() {
		p.bar.ChangeMax(total)
	}
	if err := p.bar.Set(done); err != nil {
		slog.Debug("progress update failed", "error", err)
	}
}

// Finish completes the bar.
func (p *Progress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Debug("progress finish failed", "error", err)
	}
}
