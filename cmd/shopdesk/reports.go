package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adroitalarm/shopdesk/internal/cli"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/config"
	"github.com/adroitalarm/shopdesk/internal/export"
	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/report"
	"github.com/adroitalarm/shopdesk/internal/sheets"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Sales reports and exports",
	}

	cmd.AddCommand(reportFiltersCmd())
	cmd.AddCommand(dailyReportCmd())
	cmd.AddCommand(periodReportCmd(model.ViewMonthly))
	cmd.AddCommand(periodReportCmd(model.ViewYearly))
	cmd.AddCommand(rangeReportCmd())
	cmd.AddCommand(reportDetailCmd())
	cmd.AddCommand(exportReportCmd())
	cmd.AddCommand(sheetsAuthCmd())
	cmd.AddCommand(scheduleExportCmd())
	cmd.AddCommand(exportHistoryCmd())

	return cmd
}

func reportFiltersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Show the periods that have report data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				f, err := a.client.ReportFilters(ctx)
				if err != nil {
					return err
				}
				years := make([]string, len(f.Years))
				for i, y := range f.Years {
					years[i] = y.String()
				}
				return cli.PrintKeyValues(cmd.OutOrStdout(), [][2]string{
					{"Months", format.OrNA(strings.Join(f.Months, ", "))},
					{"Years", format.OrNA(strings.Join(years, ", "))},
					{"Dates", format.OrNA(strings.Join(f.Dates, ", "))},
				})
			})
		},
	}
}

// reportOutput holds the --output and --file flags of report commands.
type reportOutput struct {
	output string
	file   string
}

func (o *reportOutput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", outputTable, "output format (table, json, xlsx)")
	cmd.Flags().StringVar(&o.file, "file", "", "xlsx output path")
}

// write prints tables, or v as JSON, or the tables as a workbook.
func (o reportOutput) write(w io.Writer, defaultFile, tab string, tables []export.Table, v any) error {
	switch o.output {
	case "", outputTable:
		return printTables(w, tables)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputXLSX:
		file := o.file
		if file == "" {
			file = defaultFile
		}
		if err := export.WriteXLSX(file, tab, tables); err != nil {
			return err
		}
		abs, _ := filepath.Abs(file)
		_, err := fmt.Fprintln(w, cli.FormatSuccess("Report exported to "+abs))
		return err
	default:
		return common.NewUserError(fmt.Sprintf("Unknown output format %q; use table, json or xlsx", o.output), common.ErrValidation)
	}
}

// printTables renders each table under its title. Empty tables are skipped.
func printTables(w io.Writer, tables []export.Table) error {
	for _, t := range tables {
		if len(t.Rows) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, cli.FormatTitle(t.Title)); err != nil {
			return err
		}
		if err := cli.PrintTable(w, t.Header, tableCells(t), nil); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func tableCells(t export.Table) [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows
}

func dailyReportCmd() *cobra.Command {
	var (
		date string
		out  reportOutput
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show one day's sales report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = time.Now().AddDate(0, 0, -1).Format(time.DateOnly)
			}
			if err := checkDate("--date", date); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				d, err := a.client.DailyReport(ctx, date)
				if err != nil {
					return err
				}
				r := report.FromDaily(d)
				return out.write(cmd.OutOrStdout(),
					filepath.Join(a.cfg.Export.Dir, export.FileName(model.ViewDaily, "summary", export.DatePeriod(date, date))),
					"summary", export.RangeTables(r), r)
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report date, YYYY-MM-DD (default yesterday)")
	out.register(cmd)
	return cmd
}

func periodReportCmd(view string) *cobra.Command {
	var (
		month, year string
		out         reportOutput
	)

	cmd := &cobra.Command{
		Use:   view,
		Short: fmt.Sprintf("List %s report periods with their totals", view),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == "" {
				year = strconv.Itoa(time.Now().Year())
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				var (
					entries []model.ReportEntry
					err     error
				)
				if view == model.ViewMonthly {
					entries, err = a.client.MonthlyReports(ctx, month, year)
				} else {
					entries, err = a.client.YearlyReports(ctx, year)
				}
				if err != nil {
					return err
				}
				t := entryTable(view, entries)
				return out.write(cmd.OutOrStdout(),
					filepath.Join(a.cfg.Export.Dir, export.FileName(view, "summary", year)),
					"summary", []export.Table{t}, entries)
			})
		},
	}

	if view == model.ViewMonthly {
		cmd.Flags().StringVar(&month, "month", "", "month name or number (default all)")
	}
	cmd.Flags().StringVar(&year, "year", "", "year (default current)")
	out.register(cmd)
	return cmd
}

// entryTable lays out a report listing, one row per period.
func entryTable(view string, entries []model.ReportEntry) export.Table {
	t := export.Table{
		Title:  format.Capitalize(view) + " Reports",
		Header: []string{"Period", "Orders", "Sales"},
	}
	var orders int
	var sales float64
	for _, e := range entries {
		orders += e.Orders()
		sales += e.Sales()
		t.Rows = append(t.Rows, []any{e.Period(), e.Orders(), format.CurrencyFloat(e.Sales())})
	}
	if len(entries) > 1 {
		t.Rows = append(t.Rows, []any{"Total", orders, format.CurrencyFloat(sales)})
	}
	return t
}

func rangeReportCmd() *cobra.Command {
	var (
		start, end string
		out        reportOutput
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Combine the daily reports of a date range",
		Long: `Fetch every day with report data between --start and --end and merge them.
Days that fail to load are listed but left out of the totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkRange(start, end); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				r, err := buildRange(ctx, cmd, a, start, end, out.output == outputTable || out.output == "")
				if err != nil {
					return err
				}
				return out.write(cmd.OutOrStdout(),
					filepath.Join(a.cfg.Export.Dir, export.FileName(model.ViewDaily, "summary", export.DatePeriod(start, end))),
					"summary", export.RangeTables(r), r)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	out.register(cmd)
	return cmd
}

// buildRange aggregates a range, drawing a progress bar on stderr when
// showProgress is set.
func buildRange(ctx context.Context, cmd *cobra.Command, a *app, start, end string, showProgress bool) (report.RangeReport, error) {
	opts := []report.Option{
		report.WithLogger(a.logger),
		report.WithMaxConcurrency(a.cfg.API.MaxConcurrency),
	}
	var bar *cli.Progress
	if showProgress {
		opts = append(opts, report.WithProgress(func(done, total int) {
			if bar == nil {
				bar = cli.NewProgress(cmd.ErrOrStderr(), total, "Fetching daily reports")
			}
			bar.Set(done, total)
		}))
	}

	r, err := report.NewAggregator(a.client, opts...).Range(ctx, start, end)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return report.RangeReport{}, err
	}
	if n := len(r.DatesFailed); n > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("%d day(s) could not be loaded: %s", n, strings.Join(r.DatesFailed, ", "))))
	}
	return r, nil
}

func reportDetailCmd() *cobra.Command {
	var (
		view, period, tab string
		out               reportOutput
	)

	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Show the detail tables of one report period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains([]string{model.ViewDaily, model.ViewMonthly, model.ViewYearly}, view) {
				return common.NewUserError(fmt.Sprintf("Invalid view %q; use daily, monthly or yearly", view), common.ErrValidation)
			}
			if !slices.Contains(model.ReportTabs, tab) {
				return common.NewUserError(fmt.Sprintf("Invalid tab %q; choose one of: %s", tab, strings.Join(model.ReportTabs, ", ")), common.ErrValidation)
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				d, err := a.client.ReportDetail(ctx, view, period, tab)
				if err != nil {
					return err
				}
				return out.write(cmd.OutOrStdout(),
					filepath.Join(a.cfg.Export.Dir, export.FileName(view, tab, period)),
					tab, export.DetailTables(d), d)
			})
		},
	}

	cmd.Flags().StringVar(&view, "view", model.ViewDaily, "daily, monthly or yearly")
	cmd.Flags().StringVar(&period, "period", "", "date, month or year of the report")
	cmd.Flags().StringVar(&tab, "tab", model.ReportTabs[0], "detail tab ("+strings.Join(model.ReportTabs, ", ")+")")
	_ = cmd.MarkFlagRequired("period")
	out.register(cmd)
	return cmd
}

func exportReportCmd() *cobra.Command {
	var start, end, target string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a range report to a workbook or Google Sheets",
		Long: `Export the combined report for --start through --end. Single-day exports are
recorded in the export history and skipped when already done.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if end == "" {
				end = start
			}
			if err := checkRange(start, end); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				t, err := exportTarget(ctx, a, target)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()

				if start == end {
					agg := report.NewAggregator(a.client, report.WithLogger(a.logger), report.WithMaxConcurrency(a.cfg.API.MaxConcurrency))
					locations, err := export.NewDaily(agg, a.store, a.logger, t).Run(ctx, start)
					if err != nil {
						return err
					}
					if len(locations) == 0 {
						fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Report for %s was already exported to %s", start, target)))
					}
					for _, loc := range locations {
						fmt.Fprintln(w, cli.FormatSuccess("Report exported to "+loc))
					}
					return nil
				}

				r, err := buildRange(ctx, cmd, a, start, end, true)
				if err != nil {
					return err
				}
				loc, err := t.Export(ctx, export.DatePeriod(start, end), export.RangeTables(r))
				if err != nil {
					return err
				}
				fmt.Fprintln(w, cli.FormatSuccess("Report exported to "+loc))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD (default --start)")
	cmd.Flags().StringVar(&target, "target", storage.TargetXLSX, "xlsx or sheets")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

// xlsxTarget names single days like the scheduled export and ranges by
// their period.
type xlsxTarget struct {
	dir string
}

func (x xlsxTarget) Name() string { return storage.TargetXLSX }

func (x xlsxTarget) Export(ctx context.Context, dateOrPeriod string, tables []export.Table) (string, error) {
	if _, err := time.Parse(time.DateOnly, dateOrPeriod); err == nil {
		return export.XLSXTarget{Dir: x.dir}.Export(ctx, dateOrPeriod, tables)
	}
	path := filepath.Join(x.dir, export.FileName(model.ViewDaily, "summary", dateOrPeriod))
	if err := export.WriteXLSX(path, "summary", tables); err != nil {
		return "", err
	}
	return path, nil
}

// exportTarget builds the named export target.
func exportTarget(ctx context.Context, a *app, name string) (export.Target, error) {
	switch name {
	case "", storage.TargetXLSX:
		return xlsxTarget{dir: a.cfg.Export.Dir}, nil
	case storage.TargetSheets:
		sc, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, err
		}
		w, err := sheets.NewWriter(ctx, *sc, a.logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, common.NewUserError(fmt.Sprintf("Unknown export target %q; use xlsx or sheets", name), common.ErrValidation)
	}
}

func sheetsAuthCmd() *cobra.Command {
	var tokenFile string

	cmd := &cobra.Command{
		Use:   "sheets-auth",
		Short: "Authorize Google Sheets exports",
		Long: `Run the Google consent flow with sheets.client_id and sheets.client_secret
and print the refresh token to store as sheets.refresh_token.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sc, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}
			if sc.ClientID == "" || sc.ClientSecret == "" {
				return common.NewUserError("Set sheets.client_id and sheets.client_secret first", common.ErrInvalidConfig)
			}

			w := cmd.OutOrStdout()
			token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
				ClientID:     sc.ClientID,
				ClientSecret: sc.ClientSecret,
				TokenFile:    config.ExpandPath(tokenFile),
				OpenURL: func(url string) {
					fmt.Fprintln(w, cli.FormatInfo("Open this URL to authorize access:"))
					fmt.Fprintln(w, url)
				},
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(w, cli.FormatSuccess("Google Sheets authorized"))
			if token.RefreshToken != "" {
				fmt.Fprintln(w, cli.RenderBox("sheets.refresh_token", token.RefreshToken))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFile, "token-file", "~/.config/shopdesk/sheets_token.json", "where to cache the token")
	return cmd
}

func scheduleExportCmd() *cobra.Command {
	var (
		spec     string
		runNow   bool
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Export each previous day's report on a cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if spec == "" {
					spec = a.cfg.Export.Schedule
				}
				targets := []export.Target{export.XLSXTarget{Dir: a.cfg.Export.Dir}}
				if toSheets {
					t, err := exportTarget(ctx, a, storage.TargetSheets)
					if err != nil {
						return err
					}
					targets = append(targets, t)
				}

				agg := report.NewAggregator(a.client, report.WithLogger(a.logger), report.WithMaxConcurrency(a.cfg.API.MaxConcurrency))
				daily := export.NewDaily(agg, a.store, a.logger, targets...)
				w := cmd.OutOrStdout()

				if runNow {
					date := daily.Yesterday()
					locations, err := daily.Run(ctx, date)
					if err != nil {
						fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Export for %s failed: %s", date, common.Describe(err))))
					}
					for _, loc := range locations {
						fmt.Fprintln(w, cli.FormatSuccess("Report exported to "+loc))
					}
				}

				if err := daily.Start(ctx, spec); err != nil {
					return common.NewUserError(err.Error(), common.ErrInvalidConfig)
				}
				defer daily.Stop()

				fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("Exporting daily reports on %q. Press Ctrl+C to stop.", spec)))
				<-ctx.Done()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "cron expression (default from schedule.cron)")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "export yesterday immediately")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "also export to Google Sheets")
	return cmd
}

func exportHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded report exports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			recs, err := a.store.RecentExports(ctx, limit)
			if err != nil {
				return err
			}
			rows := make([][]string, len(recs))
			for i, r := range recs {
				rows[i] = []string{r.ReportDate, r.Target, r.Location, r.ExportedAt.Local().Format(time.DateTime)}
			}
			return cli.PrintTable(cmd.OutOrStdout(), []string{"Date", "Target", "Location", "Exported"}, rows, nil)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows; 0 lists all")
	return cmd
}

func checkDate(flag, v string) error {
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return common.NewUserError(fmt.Sprintf("Invalid %s date %q, expected YYYY-MM-DD", flag, v), common.ErrValidation)
	}
	return nil
}

// checkRange validates a start/end pair of dates.
func checkRange(start, end string) error {
	if err := checkDate("--start", start); err != nil {
		return err
	}
	if err := checkDate("--end", end); err != nil {
		return err
	}
	if end < start {
		return common.NewUserError("End date cannot be before start date", common.ErrInvalidDateRange)
	}
	return nil
}
