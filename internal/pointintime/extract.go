package pointintime

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Extract derives the ordering key of a label, trying in order:
//  1. the last whitespace-delimited token as an integer (Int),
//  2. the first token as an integer, keeping its original text (Token),
//  3. tokens from index 2 onward joined by single spaces (Text).
//
// Extract never fails. Labels are NFC normalized before tokenizing so that
// canonically equivalent labels yield equal keys.
func Extract(label string) Key {
	tokens := strings.Fields(norm.NFC.String(label))

	if len(tokens) > 0 {
		if n, ok := ParseInt(tokens[len(tokens)-1]); ok {
			return Int(n)
		}
		if _, ok := ParseInt(tokens[0]); ok {
			return Token(tokens[0])
		}
	}

	if len(tokens) < 3 {
		return Text("")
	}
	return Text(strings.Join(tokens[2:], " "))
}

// ParseInt parses a base-10 integer token.
//
// Accepted: an optional '+' or '-' sign followed by Unicode decimal digits
// (ASCII, Arabic-Indic, Devanagari, ...). A single '_' may separate two
// digits. Values outside the int64 range are rejected.
func ParseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	// Accumulate as a negative number so math.MinInt64 fits.
	var acc int64
	digits := 0
	prevUnderscore := false
	for _, r := range s {
		if r == '_' {
			if digits == 0 || prevUnderscore {
				return 0, false
			}
			prevUnderscore = true
			continue
		}
		d, ok := digitValue(r)
		if !ok {
			return 0, false
		}
		prevUnderscore = false
		digits++

		if acc < (math.MinInt64+int64(d))/10 {
			return 0, false
		}
		acc = acc*10 - int64(d)
	}
	if prevUnderscore {
		return 0, false
	}

	if neg {
		return acc, true
	}
	if acc == math.MinInt64 {
		return 0, false
	}
	return -acc, true
}

// digitValue returns the value of a Unicode decimal digit.
// Decimal digits (category Nd) are always allocated in contiguous runs of
// ten starting at zero, so the value is the offset from the start of the
// run modulo ten.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if !unicode.Is(unicode.Nd, r) {
		return 0, false
	}
	start := r
	for start > 0 && unicode.Is(unicode.Nd, start-1) {
		start--
	}
	return int(r-start) % 10, true
}
