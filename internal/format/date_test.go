package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateIn(t *testing.T) {
	utc := time.UTC
	sydney := time.FixedZone("AEST", 10*60*60)

	tests := []struct {
		name string
		raw  string
		loc  *time.Location
		want string
	}{
		{"empty", "", utc, ""},
		{"date only", "2024-03-05", utc, "03/05/2024"},
		{"date only ignores zone", "2024-03-05", sydney, "03/05/2024"},
		{"timestamp", "2024-03-05T10:00:00Z", utc, "03/05/2024"},
		{"timestamp shifts into zone", "2024-03-05T20:00:00Z", sydney, "03/06/2024"},
		{"microseconds", "2024-03-05T10:00:00.000000Z", utc, "03/05/2024"},
		{"sql datetime", "2024-03-05 23:59:59", utc, "03/05/2024"},
		{"unparseable passes through", "not a date", utc, "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateIn(tt.raw, tt.loc))
		})
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "01/01/2024 to 01/31/2024", DateRange("2024-01-01", "2024-01-31"))
	assert.Equal(t, "", DateRange("", "2024-01-31"))
}

func TestCapitalizeAndOrNA(t *testing.T) {
	assert.Equal(t, "Pending", Capitalize("pending"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "N/A", OrNA("  "))
	assert.Equal(t, "card", OrNA("card"))
}
