package docno

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "est-2024-003", Format(PrefixEstimate, 2024, 3))
	assert.Equal(t, "ctr-2024-120", Format(PrefixContract, 2024, 120))
	assert.Equal(t, "prg-2025-1000", Format(PrefixProgress, 2025, 1000))
}

func TestSeq(t *testing.T) {
	n, ok := Seq("prg-2024-017")
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	n, ok = Seq("est-2024-1042")
	assert.True(t, ok)
	assert.Equal(t, 1042, n)

	for _, bad := range []string{"", "prg-2024-17", "prg-24-017", "something-else", "prg-2024-"} {
		_, ok := Seq(bad)
		assert.False(t, ok, bad)
	}
}

func TestNextStartsAtOne(t *testing.T) {
	assert.Equal(t, "est-2024-001", Next(PrefixEstimate, 2024, ""))
	assert.Equal(t, "est-2024-001", Next(PrefixEstimate, 2024, "garbage"))
}

func TestNextIsMonotonic(t *testing.T) {
	last := ""
	for i := 1; i <= 25; i++ {
		last = Next(PrefixContract, 2024, last)
		assert.Equal(t, fmt.Sprintf("ctr-2024-%03d", i), last)
	}
}

func TestNextWidensPast999(t *testing.T) {
	assert.Equal(t, "prg-2024-1000", Next(PrefixProgress, 2024, "prg-2024-999"))
	assert.Equal(t, "prg-2024-1001", Next(PrefixProgress, 2024, "prg-2024-1000"))
}

func TestLike(t *testing.T) {
	assert.Equal(t, "est-2024-%", Like(PrefixEstimate, 2024))
}
