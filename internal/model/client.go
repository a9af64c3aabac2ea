package model

import "time"

// Client is an ordering party ("거래처"). Other aggregates reference clients by
// name; ClientID columns exist elsewhere for future linkage but are not the
// source of truth.
type Client struct {
	ID               int64
	Name             string
	BizNo            string
	CeoName          string
	Phone            string
	Email            string
	Address          string
	Memo             string
	CertFilename     string
	CertOriginalName string
	CreatedAt        time.Time
}
