package domain

import "time"

// User is a persisted account identity record. The ID is assigned by the
// store on creation and never changes; the username is unique across all
// users. PasswordHash always holds the credential hasher's output, never a
// raw password.
type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordHash      string // argon2id PHC encoded
	FullName          string
	Gender            string
	DateOfBirth       string // "2006-01-02", empty when unset
	City              string
	Country           string
	Bio               string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
