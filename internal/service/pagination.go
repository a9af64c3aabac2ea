package service

import "github.com/hanseo-dev/siteoffice/internal/numparse"

// Page is the resolved pagination window for a list query.
//
// StartNumber seeds the countdown display numbering: the first row on the
// page shows totalCount-offset and each following row one less, so the newest
// record carries the highest number across all pages.
type Page struct {
	TotalCount  int64
	TotalPages  int
	CurrentPage int
	PerPage     int
	Offset      int
	StartNumber int64
}

// Paginate clamps a raw page parameter into [1, totalPages], with totalPages
// floored at 1 even for an empty result set.
func Paginate(totalCount int64, rawPage string, perPage int) Page {
	totalPages := 1
	if totalCount > 0 {
		totalPages = int((totalCount + int64(perPage) - 1) / int64(perPage))
	}

	current := int(numparse.IntOrDefault(rawPage, 1))
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	offset := (current - 1) * perPage
	return Page{
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: current,
		PerPage:     perPage,
		Offset:      offset,
		StartNumber: totalCount - int64(offset),
	}
}
