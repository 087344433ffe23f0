package pointintime

import (
	"cmp"
	"strconv"
	"strings"
)

// Key is a sealed interface over the three ordering key variants.
// Only Int, Token and Text implement it.
type Key interface {
	pointInTime() // Sealed

	// String renders the key the way it appears in a synthesized label.
	String() string
}

// Int is a key parsed from the trailing token of a label.
type Int int64

func (Int) pointInTime() {}

func (k Int) String() string {
	return strconv.FormatInt(int64(k), 10)
}

// Token is the leading token of a label, kept as text because it parsed as
// an integer only after the trailing token did not.
// Tokens compare lexicographically, so "10" sorts before "9".
type Token string

func (Token) pointInTime() {}

func (k Token) String() string {
	return string(k)
}

// Text is the free-text fallback: tokens from index 2 onward joined by a
// single space. Empty for labels with fewer than three tokens.
type Text string

func (Text) pointInTime() {}

func (k Text) String() string {
	return string(k)
}

// Rank orders the variants against each other: Int < Token < Text.
// Returns -1 for unknown implementations (nil).
func Rank(k Key) int {
	switch k.(type) {
	case Int:
		return 0
	case Token:
		return 1
	case Text:
		return 2
	default:
		return -1
	}
}

// Compare returns a total order over keys.
// Keys of different variants are ordered by Rank; keys of the same variant
// use their natural order (numeric for Int, byte-wise for Token and Text).
func Compare(a, b Key) int {
	ra, rb := Rank(a), Rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch av := a.(type) {
	case Int:
		return cmp.Compare(av, b.(Int))
	case Token:
		return strings.Compare(string(av), string(b.(Token)))
	case Text:
		return strings.Compare(string(av), string(b.(Text)))
	default:
		// Both nil
		return 0
	}
}

// Less reports whether a sorts strictly before b.
func Less(a, b Key) bool {
	return Compare(a, b) < 0
}

// Kind names the variant, for diagnostics.
func Kind(k Key) string {
	switch k.(type) {
	case Int:
		return "int"
	case Token:
		return "token"
	case Text:
		return "text"
	default:
		return "none"
	}
}
