package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// ReportFilters lists the months, years and dates that have reports.
func (c *Client) ReportFilters(ctx context.Context) (model.ReportFilters, error) {
	var resp struct {
		Data model.ReportFilters `json:"data"`
	}
	if err := c.get(ctx, "/reports/filters", nil, &resp); err != nil {
		return model.ReportFilters{}, fmt.Errorf("fetching report filters: %w", err)
	}
	return resp.Data, nil
}

// MonthlyReports lists monthly reports. Empty month and year list all.
func (c *Client) MonthlyReports(ctx context.Context, month, year string) ([]model.ReportEntry, error) {
	query := url.Values{}
	if month != "" && year != "" {
		query.Set("month", month)
		query.Set("year", year)
	}
	return c.reportEntries(ctx, "/reports/monthly", query)
}

// YearlyReports lists yearly reports. An empty year lists all.
func (c *Client) YearlyReports(ctx context.Context, year string) ([]model.ReportEntry, error) {
	query := url.Values{}
	if year != "" {
		query.Set("year", year)
	}
	return c.reportEntries(ctx, "/reports/yearly", query)
}

// ReportsByDate lists the daily report entries between two YYYY-MM-DD
// dates, inclusive.
func (c *Client) ReportsByDate(ctx context.Context, start, end string) ([]model.ReportEntry, error) {
	return c.reportEntries(ctx, "/reports/by-date", url.Values{
		"start_date": {start},
		"end_date":   {end},
	})
}

// DailyReport fetches the full report for one YYYY-MM-DD date.
func (c *Client) DailyReport(ctx context.Context, date string) (model.DailyReport, error) {
	var resp struct {
		Data model.DailyReport `json:"data"`
	}
	if err := c.get(ctx, "/reports/daily", url.Values{"date": {date}}, &resp); err != nil {
		return model.DailyReport{}, fmt.Errorf("fetching daily report %s: %w", date, err)
	}
	return resp.Data, nil
}

// ReportDetail fetches one tab of a monthly or yearly report.
func (c *Client) ReportDetail(ctx context.Context, viewType, period, tab string) (model.ReportDetail, error) {
	var resp struct {
		Data model.ReportDetail `json:"data"`
	}
	query := url.Values{
		"type":   {viewType},
		"period": {period},
		"tab":    {tab},
	}
	if err := c.get(ctx, "/reports/details", query, &resp); err != nil {
		return model.ReportDetail{}, fmt.Errorf("the %q tab is not available for %s %s: %w", tab, viewType, period, err)
	}
	return resp.Data, nil
}

func (c *Client) reportEntries(ctx context.Context, path string, query url.Values) ([]model.ReportEntry, error) {
	var resp struct {
		Data []model.ReportEntry `json:"data"`
	}
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	return resp.Data, nil
}
