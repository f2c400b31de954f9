package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/export"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

var _ export.Target = (*Writer)(nil)

// Writer exports one report per worksheet tab.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger.With("component", "sheets"),
	}, nil
}

// Name implements export.Target.
func (w *Writer) Name() string { return storage.TargetSheets }

// Export writes tables to the tab named tabTitle, replacing its contents,
// and returns the spreadsheet URL.
func (w *Writer) Export(ctx context.Context, tabTitle string, tables []export.Table) (string, error) {
	values := TableValues(tables)
	w.logger.Info("starting sheet export", "tab", tabTitle, "rows", len(values))

	spreadsheet, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	sheetID, err := w.ensureTab(ctx, spreadsheet, tabTitle)
	if err != nil {
		return "", err
	}

	err = common.WithRetry(ctx, func() error {
		if _, err := w.service.Spreadsheets.Values.Clear(spreadsheet.SpreadsheetId, quoteTab(tabTitle), &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to clear tab: %w", err)
		}
		return w.writeData(ctx, spreadsheet.SpreadsheetId, tabTitle, values)
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheet.SpreadsheetId, sheetID, HeaderRows(tables))
		}, retryOpts)
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheet.SpreadsheetId,
		"tab", tabTitle,
		"rows_written", len(values))
	return spreadsheet.SpreadsheetUrl, nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

func tokenSource(ctx context.Context, config Config) (oauth2.TokenSource, error) {
	method, err := config.Auth()
	if err != nil {
		return nil, err
	}
	if method == AuthOAuth {
		return oauthConfig(config.ClientID, config.ClientSecret).TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}), nil
	}

	key, err := os.ReadFile(config.ServiceAccountPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}
	return jwt.TokenSource(ctx), nil
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	if w.config.SpreadsheetID != "" {
		s, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return s, nil
	}

	created, err := w.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	// Later exports reuse it.
	w.config.SpreadsheetID = created.SpreadsheetId
	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)
	return created, nil
}

// ensureTab returns the sheet ID of title, adding the tab if needed.
func (w *Writer) ensureTab(ctx context.Context, spreadsheet *sheets.Spreadsheet, title string) (int64, error) {
	if id, ok := FindSheet(spreadsheet, title); ok {
		return id, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to add tab %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unable to add tab %q: empty reply", title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (w *Writer) writeData(ctx context.Context, spreadsheetID, tab string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))
		batch := values[i:end]

		rangeStr := fmt.Sprintf("%s!A%d", quoteTab(tab), i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}
	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, boldRows []int64) error {
	requests := make([]*sheets.Request, 0, len(boldRows)+1)
	for _, row := range boldRows {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: row,
					EndRowIndex:   row + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		})
	}
	requests = append(requests, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   8,
			},
		},
	})

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}
