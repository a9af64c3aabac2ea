package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOriginalName(t *testing.T) {
	// Korean filename whose UTF-8 bytes were decoded as latin1 by the
	// multipart parser.
	mangled := string([]rune{0xEA, 0xB3, 0x84, 0xEC, 0x95, 0xBD, 0xEC, 0x84, 0x9C}) + ".pdf"
	assert.Equal(t, "계약서.pdf", NormalizeOriginalName(mangled))

	// Already-decoded names pass through untouched.
	assert.Equal(t, "계약서.pdf", NormalizeOriginalName("계약서.pdf"))
	assert.Equal(t, "report.xlsx", NormalizeOriginalName("report.xlsx"))
	assert.Equal(t, "", NormalizeOriginalName(""))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "a_b_c", SanitizeFileName("a/b\\c"))
	assert.Equal(t, "name_", SanitizeFileName("name?"))
	assert.Equal(t, "plain.pdf", SanitizeFileName(" plain.pdf "))
}
