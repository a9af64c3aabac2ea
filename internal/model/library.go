package model

import "time"

// LibraryDoc is an entry in the shared document library (forms, templates,
// reference files).
type LibraryDoc struct {
	ID           int64
	Title        string
	Category     string
	DocType      string
	Filename     string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Memo         string
	CreatedAt    time.Time
	RowNo        int64 `gorm:"-"`
}
