// Package export turns reports and listings into tables and writes them to
// XLSX workbooks or other targets.
package export

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/report"
)

// MaxSheetName is the longest sheet title written.
const MaxSheetName = 30

var whitespace = regexp.MustCompile(`\s+`)

// Table is one titled grid of cells. Header may be empty.
type Table struct {
	Title  string
	Header []string
	Rows   [][]any
}

// SheetName derives the worksheet title for the index-th table of a tab:
// the title with whitespace runs replaced by "_", lowercased and cut to
// MaxSheetName. Untitled tables are named "<tab>_table_<n>".
func SheetName(title, tab string, index int) string {
	name := fmt.Sprintf("%s_table_%d", tab, index+1)
	if t := strings.TrimSpace(title); t != "" {
		name = strings.ToLower(whitespace.ReplaceAllString(t, "_"))
	}
	if r := []rune(name); len(r) > MaxSheetName {
		name = string(r[:MaxSheetName])
	}
	return name
}

// FileName is the workbook name for a report view.
func FileName(viewType, tab, period string) string {
	return fmt.Sprintf("%s_%s_report_%s.xlsx", viewType, tab, period)
}

// DatePeriod renders a date range for use in a file name, e.g.
// "03-01-2025_to_03-07-2025".
func DatePeriod(start, end string) string {
	p := whitespace.ReplaceAllString(format.DateRange(start, end), "_")
	return strings.ReplaceAll(p, "/", "-")
}

// RangeTables lays out a range report as the tables shown on screen.
func RangeTables(r report.RangeReport) []Table {
	summary := Table{
		Title:  "Sales Summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Report Period", format.DateRange(r.ReportStartDate, r.ReportEndDate)},
			{"Total Orders", r.Summary.TotalOrders},
			{"Total Sales", "$" + r.Summary.TotalSales},
			{"Unique Customers", r.Summary.UniqueCustomers},
			{"Average Order Value", "$" + r.Summary.AverageOrderValue},
			{"Generated At", r.ReportGeneratedAt},
			{"Printed By", r.PrintedBy},
		},
	}

	products := Table{Title: "Top Products", Header: []string{"Product", "Quantity Sold", "Revenue"}}
	for _, p := range r.TopProducts {
		products.Rows = append(products.Rows, []any{p.ProductName, p.QuantitySold, "$" + p.Revenue})
	}

	methods := Table{Title: "Payment Methods", Header: []string{"Payment Method", "Orders", "Total Amount"}}
	for _, m := range r.PaymentMethods {
		methods.Rows = append(methods.Rows, []any{format.Capitalize(m.PaymentMethod), m.OrderCount, "$" + m.TotalAmount})
	}

	hours := Table{Title: "Orders By Hour", Header: []string{"Hour", "Orders", "Sales"}}
	for _, h := range r.OrdersByHour {
		hours.Rows = append(hours.Rows, []any{h.Hour.Int(), h.OrderCount.Int(), format.Currency(h.Sales.String())})
	}

	dates := Table{Title: "Dates", Header: []string{"Date", "Included"}}
	for _, d := range r.DatesIncluded {
		dates.Rows = append(dates.Rows, []any{d, "yes"})
	}
	for _, d := range r.DatesFailed {
		dates.Rows = append(dates.Rows, []any{d, "no"})
	}

	return []Table{summary, products, methods, hours, dates}
}

// DetailTables lays out one report details tab. Row columns are the union
// of keys across rows, sorted.
func DetailTables(d model.ReportDetail) []Table {
	summary := Table{
		Title:  "Summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Total Orders", d.Summary.TotalOrders.Int()},
			{"Total Sales", format.Currency(d.Summary.TotalSales.String())},
			{"Unique Customers", d.Summary.UniqueCustomers.Int()},
			{"Average Order Value", format.Currency(d.Summary.AverageOrderValue.String())},
		},
	}

	var columns []string
	seen := map[string]bool{}
	for _, row := range d.Rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	slices.Sort(columns)

	data := Table{Title: format.Capitalize(d.Tab) + " Details"}
	for _, c := range columns {
		data.Header = append(data.Header, headerLabel(c))
	}
	for _, row := range d.Rows {
		cells := make([]any, len(columns))
		for i, c := range columns {
			if v, ok := row[c]; ok && v != nil {
				cells[i] = v
			} else {
				cells[i] = ""
			}
		}
		data.Rows = append(data.Rows, cells)
	}
	return []Table{summary, data}
}

// MatrixTable wraps a header-first string matrix.
func MatrixTable(title string, matrix [][]string) Table {
	t := Table{Title: title}
	if len(matrix) == 0 {
		return t
	}
	t.Header = matrix[0]
	for _, row := range matrix[1:] {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func headerLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = format.Capitalize(w)
	}
	return strings.Join(words, " ")
}
