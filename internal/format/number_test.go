package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"  7", 7},
		{"12.5abc", 12.5},
		{"-3.25", -3.25},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1e", 1},
		{"+4", 4},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloat(tt.in))
		})
	}

	for _, in := range []string{"", "abc", "-", ".", "$12"} {
		assert.True(t, math.IsNaN(ParseFloat(in)), "input %q", in)
	}
}

func TestParseInt(t *testing.T) {
	n, ok := ParseInt("42 units")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = ParseInt("3.9")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = ParseInt("x1")
	assert.False(t, ok)
}

func TestToFixed(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		digits int
		want   string
	}{
		{"integer", 12, 2, "12.00"},
		{"exact tie rounds away", 0.125, 2, "0.13"},
		{"binary below tie", 1.005, 2, "1.00"},
		{"carry into integer", 9.995, 2, "9.99"},
		{"carry all nines", 99.999, 2, "100.00"},
		{"negative", -3.14159, 2, "-3.14"},
		{"negative rounds to zero", -0.001, 2, "-0.00"},
		{"zero digits", 2.5, 0, "3"},
		{"average", 3.75, 2, "3.75"},
		{"nan", math.NaN(), 2, "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFixed(tt.x, tt.digits))
		})
	}
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$12.50", Currency("12.5"))
	assert.Equal(t, "$1234.00", Currency("1234"))
	assert.Equal(t, "$NaN", Currency("abc"))
	assert.Equal(t, "$0.10", CurrencyFloat(0.1))
}
