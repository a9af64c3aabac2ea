// Package numparse coerces untyped form input into numbers. Every function is
// total: malformed input yields the caller's default instead of an error.
package numparse

import (
	"math"
	"strconv"
	"strings"
)

// IntOrDefault parses a base-10 integer. The whole trimmed string must be a
// valid literal; anything else (empty, "1,000", trailing garbage) returns def.
func IntOrDefault(raw string, def int64) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// FloatOrDefault parses a decimal quantity with the same totality contract.
func FloatOrDefault(raw string, def float64) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return n
}

// AmountOrDefault parses a currency amount, accepting thousands separators
// ("1,000,000" -> 1000000). Used for progress amounts and contract totals.
func AmountOrDefault(raw string, def int64) int64 {
	return IntOrDefault(strings.ReplaceAll(raw, ",", ""), def)
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
