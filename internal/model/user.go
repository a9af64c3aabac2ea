package model

import "time"

// User is an admin login account. There is no self-service registration;
// accounts are seeded with the create-admin tool.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	StaffID      *int64
	CreatedAt    time.Time
}
