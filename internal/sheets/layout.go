package sheets

import (
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/adroitalarm/shopdesk/internal/export"
)

// TableValues stacks tables into one grid: a title row, the header, the
// rows and a blank separator per table.
func TableValues(tables []export.Table) [][]any {
	var values [][]any
	for i, t := range tables {
		if i > 0 {
			values = append(values, []any{})
		}
		values = append(values, []any{t.Title})
		if len(t.Header) > 0 {
			header := make([]any, len(t.Header))
			for j, h := range t.Header {
				header[j] = h
			}
			values = append(values, header)
		}
		values = append(values, t.Rows...)
	}
	return values
}

// HeaderRows returns the zero-based indexes of the title and header rows
// TableValues produces.
func HeaderRows(tables []export.Table) []int64 {
	var rows []int64
	var at int64
	for i, t := range tables {
		if i > 0 {
			at++
		}
		rows = append(rows, at)
		at++
		if len(t.Header) > 0 {
			rows = append(rows, at)
			at++
		}
		at += int64(len(t.Rows))
	}
	return rows
}

// FindSheet looks up a tab by title.
func FindSheet(s *sheets.Spreadsheet, title string) (int64, bool) {
	if s == nil {
		return 0, false
	}
	for _, sh := range s.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, true
		}
	}
	return 0, false
}

// quoteTab quotes a tab title for A1 notation.
func quoteTab(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
