package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/export"
	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/adroitalarm/shopdesk/internal/listing"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputXLSX  = "xlsx"
)

// listFlags are the filter, search, sort and output flags shared by the
// listing commands.
type listFlags struct {
	equals   map[string]*string
	from     string
	to       string
	search   string
	sortBy   string
	desc     bool
	page     int
	pageSize int
	output   string
	file     string
}

var dimFlags = map[string]string{
	listing.DimStatus:        "status",
	listing.DimPaymentStatus: "payment-status",
	listing.DimOrderStatus:   "order-status",
	listing.DimPaymentMethod: "payment-method",
	listing.DimRole:          "role",
	listing.DimCategory:      "category",
}

// register adds the shared flags plus one equality flag per dimension.
func (f *listFlags) register(cmd *cobra.Command, dims ...string) {
	f.equals = map[string]*string{}
	for _, dim := range dims {
		f.equals[dim] = cmd.Flags().String(dimFlags[dim], listing.All, fmt.Sprintf("filter by %s", strings.ReplaceAll(dim, "_", " ")))
	}
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.search, "search", "", "only rows containing every word")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "column to sort by")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&f.page, "page", 0, "show one page (1-based); 0 shows every row")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from grid.page_length)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputTable, "output format (table, json, xlsx)")
	cmd.Flags().StringVar(&f.file, "file", "", "xlsx output path")
}

// filter builds the record filter from the flags.
func (f listFlags) filter() (listing.Filter, error) {
	var filter listing.Filter
	for dim, v := range f.equals {
		if v != nil && *v != "" && *v != listing.All {
			filter = filter.With(dim, *v)
		}
	}

	var from, to time.Time
	var err error
	if f.from != "" {
		if from, err = time.Parse(time.DateOnly, f.from); err != nil {
			return listing.Filter{}, common.NewUserError(fmt.Sprintf("Invalid --from date %q, expected YYYY-MM-DD", f.from), common.ErrValidation)
		}
	}
	if f.to != "" {
		if to, err = time.Parse(time.DateOnly, f.to); err != nil {
			return listing.Filter{}, common.NewUserError(fmt.Sprintf("Invalid --to date %q, expected YYYY-MM-DD", f.to), common.ErrValidation)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return listing.Filter{}, common.NewUserError("End date cannot be before start date", common.ErrInvalidDateRange)
	}
	if !from.IsZero() || !to.IsZero() {
		filter = filter.Between(from, to)
	}
	return filter, nil
}

// view runs rows through a grid so search, sort and paging behave like the
// dashboard.
func (f listFlags) view(columns []string, rows []grid.Row, pageLength int) ([][]string, error) {
	if f.pageSize > 0 {
		pageLength = f.pageSize
	}
	t := grid.NewTable(columns, grid.WithPageLength(pageLength))
	t.Init(rows)
	if f.search != "" {
		t.Search(f.search)
	}
	if f.sortBy != "" {
		col := slices.IndexFunc(columns, func(c string) bool { return strings.EqualFold(c, f.sortBy) })
		if col < 0 {
			return nil, common.NewUserError(fmt.Sprintf("Unknown sort column %q; choose one of: %s", f.sortBy, strings.Join(columns, ", ")), common.ErrValidation)
		}
		t.Sort(grid.SortSpec{Column: col, Desc: f.desc})
	}

	shown := t.All()
	if f.page > 0 {
		t.SetPage(f.page - 1)
		shown = t.Visible()
	}
	out := make([][]string, len(shown))
	for i, r := range shown {
		out[i] = r.Cells
	}
	return out, nil
}

// listCommand loads a collection and prints it per the flags.
func listCommand[T any, R listing.Record](ctx context.Context, cmd *cobra.Command, a *app, f listFlags, title string, columns []string, loader listing.Loader[T, R], status cli.StatusColumns) error {
	filter, err := f.filter()
	if err != nil {
		return err
	}
	loader.Options = a.fetchOptions()
	snap, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	rows, err := f.view(columns, listing.Rows(listing.Apply(snap.Records, filter)), a.cfg.Grid.PageLength)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), f.output, f.file, title, columns, rows, status)
}

// writeRows prints rows as a table, JSON objects keyed by column, or an
// xlsx workbook.
func writeRows(w io.Writer, output, file, title string, columns []string, rows [][]string, status cli.StatusColumns) error {
	switch output {
	case "", outputTable:
		return cli.PrintTable(w, columns, rows, status)
	case outputJSON:
		objects := make([]map[string]string, len(rows))
		for i, row := range rows {
			obj := make(map[string]string, len(columns))
			for j, c := range columns {
				if j < len(row) {
					obj[c] = row[j]
				}
			}
			objects[i] = obj
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(objects)
	case outputXLSX:
		if file == "" {
			file = strings.ToLower(strings.ReplaceAll(title, " ", "_")) + ".xlsx"
		}
		matrix := append([][]string{columns}, rows...)
		if err := export.WriteXLSX(file, title, []export.Table{export.MatrixTable(title, matrix)}); err != nil {
			return err
		}
		abs, _ := filepath.Abs(file)
		_, err := fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Exported %d row(s) to %s", len(rows), abs)))
		return err
	default:
		return common.NewUserError(fmt.Sprintf("Unknown output format %q; use table, json or xlsx", output), common.ErrValidation)
	}
}
