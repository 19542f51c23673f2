package models

import "time"

type User struct {
	ID        string
	FirstName string
	Phone     string
	Login     string
	// Password is the argon2id hash, never the plaintext.
	// It is only ever populated by lookups that need to verify
	// credentials and must never leave the service layer.
	Password  string
	CreatedAt time.Time
}
