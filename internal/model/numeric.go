package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/adroitalarm/shopdesk/internal/format"
)

// Numeric holds an amount or count exactly as the backend sent it. The API
// is inconsistent about quoting numbers, so both "12.50" and 12.5 decode.
type Numeric string

// UnmarshalJSON accepts a JSON number, string or null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding numeric string: %w", err)
		}
		*n = Numeric(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("decoding numeric value %s: %w", data, err)
	}
	*n = Numeric(num.String())
	return nil
}

// MarshalJSON writes numeric-looking values as numbers and anything else as
// a string.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(n)) && n[0] != '"' && n[0] != '{' && n[0] != '[' {
		return []byte(n), nil
	}
	return json.Marshal(string(n))
}

// Float parses the value with the same leading-prefix rules the display
// layer uses. Missing values are NaN.
func (n Numeric) Float() float64 {
	return format.ParseFloat(string(n))
}

// FloatOr is Float with a fallback for missing or non-numeric values.
func (n Numeric) FloatOr(fallback float64) float64 {
	f := n.Float()
	if math.IsNaN(f) {
		return fallback
	}
	return f
}

// Int parses the leading integer, returning 0 when there is none.
func (n Numeric) Int() int {
	v, _ := format.ParseInt(string(n))
	return v
}

func (n Numeric) String() string {
	return string(n)
}
