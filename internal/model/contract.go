package model

import "time"

// Contract is an awarded agreement billed incrementally through progress
// records. TotalAmount is immutable input, never recomputed from children.
type Contract struct {
	ID          int64
	EstimateID  *int64
	ContractNo  string
	Title       string
	ClientName  string
	ClientID    *int64
	TotalAmount int64
	StartDate   string
	EndDate     string
	PdfFilename string
	BodyText    string
	CreatedAt   time.Time
}

// ContractDetail is a contract joined with its progress history and the
// cumulative billing summary.
type ContractDetail struct {
	Contract
	ProgressHistory []Progress
	Summary         ProgressSummary
}

// ProgressSummary aggregates the billing state of one contract.
type ProgressSummary struct {
	SumPaid        int64
	ContractTotal  int64
	Balance        int64
	CumulativeRate float64
}
