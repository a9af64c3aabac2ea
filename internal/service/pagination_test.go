package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_SecondPageCountdown(t *testing.T) {
	page := Paginate(30, "2", 16)

	assert.Equal(t, int64(30), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 16, page.Offset)
	assert.Equal(t, int64(14), page.StartNumber)

	// Countdown numbering: the 14 rows on page 2 display 14..1.
	rowsOnPage := page.TotalCount - int64(page.Offset)
	assert.Equal(t, int64(14), rowsOnPage)
	assert.Equal(t, int64(1), page.StartNumber-rowsOnPage+1)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		rawPage  string
		wantPage int
	}{
		{"below range", "0", 1},
		{"negative", "-3", 1},
		{"above range", "99", 2},
		{"garbage", "abc", 1},
		{"empty", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(30, tt.rawPage, 16)
			assert.Equal(t, tt.wantPage, page.CurrentPage)
		})
	}
}

func TestPaginate_EmptySet(t *testing.T) {
	page := Paginate(0, "5", 16)

	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, int64(0), page.StartNumber)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	page := Paginate(32, "2", 16)

	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(16), page.StartNumber)
}
