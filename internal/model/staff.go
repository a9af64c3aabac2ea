package model

import "time"

type Staff struct {
	ID            int64
	Name          string
	Role          string
	DailyWage     int64
	Salary        int64
	BirthDate     string
	StartDate     string
	EndDate       string
	IsActive      bool
	PhotoFilename string
	CertText      string
	CreatedAt     time.Time
}

// StaffCertFile is one uploaded certificate attachment. Cascade-deletes with
// the owning staff row.
type StaffCertFile struct {
	ID           int64
	StaffID      int64
	Filename     string
	OriginalName string
	CreatedAt    time.Time
}

// StaffDetail joins a staff row with its optional login account and
// certificate attachments.
type StaffDetail struct {
	Staff
	Username  string
	UserRole  string
	CertFiles []StaffCertFile `gorm:"-"`
}
