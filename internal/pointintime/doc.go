// Package pointintime derives ordering keys from item labels.
//
// A label such as "eduskuntavaalit 1907" carries the point in time it refers
// to. Extract pulls that value out with a three-step fallback and returns a
// Key, a sealed sum type:
//
//   - Int: the trailing token parsed as an integer ("... 1907" -> 1907)
//   - Token: the leading token text when it parses ("1907 ..." -> "1907")
//   - Text: tokens from index 2 onward ("a b c d" -> "c d")
//
// Compare defines a total order across variants (Int < Token < Text), then
// the natural order within a variant. Token keys compare as text, not as
// numbers.
package pointintime
