package domain

import "time"

// User represents a customer account
type User struct {
	ID           int64
	Name         string
	PhoneNumber  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess returns true if the actor owns the resource or is an admin
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin || a.UserID == ownerID
}
