package model

import "time"

// Estimate is a quote document. TotalAmount is derived from the item rows'
// TotalAmount at save time, not recomputed from unit prices.
type Estimate struct {
	ID          int64
	EstimateNo  string
	Title       string
	ClientName  string
	ClientID    *int64
	TotalAmount int64
	CreatedAt   time.Time
}

// EstimateItem is one line of an estimate. RowNo is 1-based and defines the
// display and export order. Amount fields are taken as supplied by the form.
type EstimateItem struct {
	ID             int64
	EstimateID     int64
	RowNo          int
	ItemName       string
	Spec           string
	Unit           string
	Qty            float64
	MaterialUnit   int64
	MaterialAmount int64
	LaborUnit      int64
	LaborAmount    int64
	ExpenseUnit    int64
	ExpenseAmount  int64
	TotalUnit      int64
	TotalAmount    int64
	Note           string
}

// Blank reports whether the row carries no content and should be dropped
// before persistence.
func (i EstimateItem) Blank() bool {
	return i.ItemName == "" && i.Spec == "" && i.Unit == "" && i.Qty == 0 && i.TotalAmount == 0
}
