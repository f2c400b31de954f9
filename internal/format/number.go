// Package format turns raw API values into display strings. Every function
// is pure and safe for concurrent use.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// ParseFloat parses the longest leading decimal literal of s, ignoring
// leading whitespace. It returns NaN when no prefix parses, so "12.5abc"
// yields 12.5 and "abc" yields NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out of range literals still carry a usable value (±Inf or 0).
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// ParseInt parses the leading base-10 integer of s and reports whether one
// was found.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ToFixed renders x with exactly digits fractional digits. Ties round to
// the larger magnitude and the exact binary value of x is used, so 1.005
// becomes "1.00" and 0.125 becomes "0.13".
func ToFixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if math.Abs(x) >= 1e21 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	// Exact decimal expansion of the binary value; float64 needs at most
	// 1074 fractional digits.
	exact := new(big.Float).SetPrec(2048).SetFloat64(x).Text('f', 1100)
	intPart, frac, _ := strings.Cut(exact, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) <= digits {
		frac += "0"
	}

	kept := intPart + frac[:digits]
	if frac[digits] >= '5' {
		kept = incrementDecimal(kept)
	}

	if digits == 0 {
		return sign + kept
	}
	split := len(kept) - digits
	return sign + kept[:split] + "." + kept[split:]
}

// Currency formats an amount the way every price column displays it:
// "$" followed by the value fixed to two decimals, without grouping.
func Currency(raw string) string {
	return CurrencySymbol + ToFixed(ParseFloat(raw), 2)
}

// CurrencyFloat is Currency for already-numeric values.
func CurrencyFloat(v float64) string {
	return CurrencySymbol + ToFixed(v, 2)
}

func incrementDecimal(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
