// Package input converts user-entered text into the numbers the payroll
// engine expects. Every parser is lenient: it reads the longest numeric
// prefix and falls back to zero, it never fails.
//
// Prefixes follow the browser's parseFloat: an exponent suffix ("1e3") is
// honored, an incomplete one ("1e") is ignored.
package input

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money parses a Brazilian-formatted amount ("1.234,56").
// Every "." is a thousands separator and the first "," is the decimal point.
func Money(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return leadingDecimal(s)
}

// Number parses a plain quantity such as hours or days.
// The first "," and then the first ":" act as decimal point, so "1:30" reads as 1.30.
func Number(s string) decimal.Decimal {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	s = strings.Replace(s, ":", ".", 1)
	return leadingDecimal(s)
}

// Int parses the leading integer of s, ignoring any fraction ("22.5" -> 22).
func Int(s string) int {
	s = strings.TrimSpace(s)
	end := signEnd(s)
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// maxExponent bounds exponent suffixes. Anything larger is no payroll amount
// and reads as zero.
const maxExponent = 20

// leadingDecimal reads [sign] digits [. digits] [e [sign] digits] from the
// start of s.
func leadingDecimal(s string) decimal.Decimal {
	i := signEnd(s)
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intEnd := i
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 || intEnd > start {
			i = j
		}
	}
	if i == start || (i == start+1 && s[start] == '.') {
		return decimal.Zero
	}

	lit := strings.TrimSuffix(s[:i], ".")
	if strings.HasPrefix(lit[start:], ".") {
		lit = lit[:start] + "0" + lit[start:]
	}
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero
	}

	if end := exponentEnd(s, i); end > i {
		exp, err := strconv.Atoi(s[i+1 : end])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return decimal.Zero
		}
		d = d.Shift(int32(exp))
	}
	return d
}

// exponentEnd returns the end of an exponent suffix starting at i, or i when
// there is no complete one.
func exponentEnd(s string, i int) int {
	if i >= len(s) || (s[i] != 'e' && s[i] != 'E') {
		return i
	}
	j := i + 1
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := j
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j == digits {
		return i
	}
	return j
}

func signEnd(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
