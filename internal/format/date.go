package format

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateLayout is the MM/DD/YYYY layout used by every list view.
const DisplayDateLayout = "01/02/2006"

// dateOnlyLayouts are calendar dates without a clock; they are formatted
// as-is so that no time zone shift can move them to a neighbouring day.
var dateOnlyLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	DisplayDateLayout,
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// localLayouts carry a clock but no zone and are read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000000",
	time.DateTime,
}

// ParseDate parses the date and timestamp shapes the backend emits.
// Timestamps are converted into loc before the calendar date is taken.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders raw as MM/DD/YYYY in the local time zone. Empty input
// yields "" and input that does not parse is returned unchanged.
func Date(raw string) string {
	return DateIn(raw, time.Local)
}

// DateIn is Date with an explicit location.
func DateIn(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	t, ok := ParseDate(raw, loc)
	if !ok {
		return raw
	}
	return t.Format(DisplayDateLayout)
}

// DateRange renders "MM/DD/YYYY to MM/DD/YYYY", or "" if either end is empty.
func DateRange(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return fmt.Sprintf("%s to %s", Date(start), Date(end))
}

// Capitalize upper-cases the first letter of a status label.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// OrNA substitutes "N/A" for missing display values.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
