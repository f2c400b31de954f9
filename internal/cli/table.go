package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// StatusColumns marks column indexes whose cells are colored by status.
type StatusColumns map[int]bool

// RenderTable lays out rows under header with a rounded border.
func RenderTable(header []string, rows [][]string, status StatusColumns) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if status[col] && row >= 0 && row < len(rows) && col < len(rows[row]) {
				return StatusStyle(rows[row][col]).PaddingRight(2)
			}
			return TableCellStyle
		})
	return t.String()
}

// PrintTable writes a table followed by a row count.
func PrintTable(w io.Writer, header []string, rows [][]string, status StatusColumns) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No records found."))
		return err
	}
	if _, err := fmt.Fprintln(w, RenderTable(header, rows, status)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("%d record(s)", len(rows))))
	return err
}

// PrintKeyValues writes aligned label/value pairs.
func PrintKeyValues(w io.Writer, pairs [][2]string) error {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	label := BoldStyle.Width(width + 2)
	for _, p := range pairs {
		if _, err := fmt.Fprintln(w, label.Render(p[0])+p[1]); err != nil {
			return err
		}
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
