// Package strlist decodes the delimiter-encoded list fields used by power records.
//
// Power tables pack several values into one cell:
//
//	CastTime      "4:2,6:3@x"      comma separates casts, colon separates startup/active
//	AoERadiusX    "40&20,35"       ampersand separates simultaneous hitboxes within a cast
//	CastImpulseX  "0~5~10,3"       tilde separates values interpolated across sub-frames
//	ComboOverrideIfDir "Up:Up Air,Down:Down Air"
//
// Decoding never fails. Absent input yields an empty slice and malformed numbers coerce to 0.
package strlist

import (
	"math"
	"strconv"
	"strings"
)

// Delimiters used inside power fields.
const (
	Comma     = ","
	Ampersand = "&"
	Colon     = ":"
	Tilde     = "~"
)

// Split breaks s on sep. An empty string yields an empty slice, not a slice holding one
// empty element. Elements are returned untrimmed so Join(Split(s)) reproduces s.
func Split(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

// SplitNested splits s on Comma and each element on Ampersand.
// An empty element yields an empty inner slice, keeping positions aligned with sibling fields.
func SplitNested(s string) [][]string {
	outer := Split(s, Comma)
	if outer == nil {
		return nil
	}
	nested := make([][]string, len(outer))
	for i, part := range outer {
		nested[i] = Split(part, Ampersand)
	}
	return nested
}

// Join is the inverse of Split.
func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// JoinNested is the inverse of SplitNested.
func JoinNested(groups [][]string) string {
	outer := make([]string, len(groups))
	for i, g := range groups {
		outer[i] = Join(g, Ampersand)
	}
	return Join(outer, Comma)
}

// Pair splits s into two trimmed colon-separated parts. ok is false when s has no colon or
// more than one.
func Pair(s string) (left, right string, ok bool) {
	parts := strings.Split(s, Colon)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// At returns parts[i], or "" when i is past the end.
func At(parts []string, i int) string {
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Float parses s as a number, returning 0 for empty or non-numeric text.
func Float(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Int parses s as a number and truncates it toward zero. Non-numeric text yields 0.
func Int(s string) int {
	return int(Float(s))
}

// Impulse splits one impulse value on Tilde into its per-sub-frame samples.
// A plain number yields a single sample; an empty value yields none.
func Impulse(s string) []float64 {
	parts := Split(strings.TrimSpace(s), Tilde)
	if parts == nil {
		return nil
	}
	samples := make([]float64, len(parts))
	for i, p := range parts {
		samples[i] = Float(p)
	}
	return samples
}

// MaxLen returns the length of the longest slice.
func MaxLen(seqs ...[]string) int {
	n := 0
	for _, s := range seqs {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}
