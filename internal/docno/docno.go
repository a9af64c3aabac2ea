// Package docno builds the year-scoped document numbers used across the
// system: est-2024-003, ctr-2024-012, prg-2025-001. Sequences never reuse
// numbers freed by deletions; the suffix widens past 999 instead of wrapping.
package docno

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	PrefixEstimate = "est"
	PrefixContract = "ctr"
	PrefixProgress = "prg"
)

var suffixPattern = regexp.MustCompile(`^[a-z]+-\d{4}-(\d{3,})$`)

// Format renders prefix-YYYY-NNN with the sequence zero-padded to 3 digits.
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// Like returns the SQL LIKE pattern matching all numbers of a prefix+year.
func Like(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-%%", prefix, year)
}

// Seq extracts the numeric suffix of a document number. Returns 0, false for
// anything that does not match the prefix-YYYY-NNN shape.
func Seq(no string) (int, bool) {
	m := suffixPattern.FindStringSubmatch(no)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the number following last within prefix+year. An empty or
// unparseable last starts the sequence at 1.
func Next(prefix string, year int, last string) string {
	seq := 0
	if n, ok := Seq(last); ok {
		seq = n
	}
	return Format(prefix, year, seq+1)
}
