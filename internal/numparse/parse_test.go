package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntOrDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  int64
		want int64
	}{
		{"plain", "1500", 0, 1500},
		{"negative", "-42", 0, -42},
		{"surrounding whitespace", "  300 ", 0, 300},
		{"empty", "", 0, 0},
		{"empty with default", "", 7, 7},
		{"non numeric", "abc", 0, 0},
		{"thousands separator rejected", "1,000", 0, 0},
		{"trailing garbage", "12abc", 0, 0},
		{"decimal rejected", "3.5", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntOrDefault(tt.raw, tt.def))
		})
	}
}

func TestFloatOrDefault(t *testing.T) {
	assert.Equal(t, 2.5, FloatOrDefault("2.5", 0))
	assert.Equal(t, 10.0, FloatOrDefault(" 10 ", 0))
	assert.Equal(t, 0.0, FloatOrDefault("", 0))
	assert.Equal(t, 1.5, FloatOrDefault("qty", 1.5))
	assert.Equal(t, 0.0, FloatOrDefault("1,5", 0))
}

func TestAmountOrDefault(t *testing.T) {
	assert.Equal(t, int64(1000000), AmountOrDefault("1,000,000", 0))
	assert.Equal(t, int64(1000), AmountOrDefault("1,000", 0))
	assert.Equal(t, int64(500), AmountOrDefault("500", 0))
	assert.Equal(t, int64(0), AmountOrDefault("1.000", 0))
	assert.Equal(t, int64(0), AmountOrDefault("", 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 12.5, Round2(12.5))
	assert.Equal(t, 0.0, Round2(0))
}
