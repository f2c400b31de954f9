package sheets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/sheets/v4"

	"github.com/adroitalarm/shopdesk/internal/export"
)

var sampleTables = []export.Table{
	{Title: "Sales Summary", Header: []string{"Metric", "Value"}, Rows: [][]any{{"Total Orders", 8}}},
	{Title: "Top Products", Header: []string{"Product", "Qty"}, Rows: [][]any{{"Keypad", 3}, {"Siren", 1}}},
	{Title: "Notes"},
}

func TestTableValues(t *testing.T) {
	values := TableValues(sampleTables)
	assert.Equal(t, [][]any{
		{"Sales Summary"},
		{"Metric", "Value"},
		{"Total Orders", 8},
		{},
		{"Top Products"},
		{"Product", "Qty"},
		{"Keypad", 3},
		{"Siren", 1},
		{},
		{"Notes"},
	}, values)
}

func TestHeaderRows(t *testing.T) {
	assert.Equal(t, []int64{0, 1, 4, 5, 9}, HeaderRows(sampleTables))
	assert.Empty(t, HeaderRows(nil))
}

func TestFindSheet(t *testing.T) {
	s := &sheets.Spreadsheet{Sheets: []*sheets.Sheet{
		{Properties: &sheets.SheetProperties{Title: "2025-03-01", SheetId: 11}},
		{Properties: &sheets.SheetProperties{Title: "2025-03-02", SheetId: 12}},
	}}
	id, ok := FindSheet(s, "2025-03-02")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
	_, ok = FindSheet(s, "2025-03-03")
	assert.False(t, ok)
	_, ok = FindSheet(nil, "x")
	assert.False(t, ok)
}

func TestQuoteTab(t *testing.T) {
	assert.Equal(t, "'2025-03-01'", quoteTab("2025-03-01"))
	assert.Equal(t, "'Bob''s'", quoteTab("Bob's"))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets", "token.json")
	token := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	require.NoError(t, SaveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	got, err := GetOrCreateToken(context.Background(), OAuth2Config{TokenFile: path})
	require.NoError(t, err)
	assert.Equal(t, "a", got.AccessToken)
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	loc, err := m.Export(context.Background(), "2025-03-01", sampleTables)
	require.NoError(t, err)
	assert.Equal(t, "mock://2025-03-01", loc)

	m.ExportFunc = func(context.Context, string, []export.Table) (string, error) {
		return "", errors.New("quota")
	}
	_, err = m.Export(context.Background(), "2025-03-02", nil)
	assert.Error(t, err)
	assert.Equal(t, 2, m.CallCount())
	assert.Equal(t, "sheets", m.Name())
}
