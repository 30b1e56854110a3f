package models

import "time"

// User is an account identity. PasswordHash is populated only on the
// lookup-by-email path used for login verification; it is never included
// in tokens or API responses.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
