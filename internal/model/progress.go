package model

import "time"

// Progress is one incremental billing event ("기성") against a contract for a
// given month. ProgressRate is derived by recalculation, never user-supplied;
// it is nil until the first recalculation runs.
type Progress struct {
	ID             int64
	ProgressNo     string
	ContractID     int64
	ProgressMonth  string // YYYY-MM, unique per contract
	ProgressRate   *float64
	ProgressAmount int64
	Note           string
	CreatedAt      time.Time
}

// ProgressWithContract is a progress row joined with its contract's display
// fields, as returned by list and detail queries.
type ProgressWithContract struct {
	Progress
	ContractNo          string
	ContractTitle       string
	ContractClientName  string
	ContractTotalAmount int64
	RowNo               int64 `gorm:"-"`
}
