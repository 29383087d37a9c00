package models

import "time"

// PasswordReset is a single-use one-time code authorizing a password change.
// The used flag flips false→true exactly once; a consumed or expired code is
// rejected on any later attempt.
type PasswordReset struct {
	// ID is a server-generated UUID primary key.
	ID string `json:"id"`

	// UserID identifies the account being reset.
	UserID int64 `json:"user_id"`

	// Email is the address the code was requested for.
	Email string `json:"email"`

	// OTP is the 6-digit numeric one-time code.
	OTP string `json:"-"`

	// ExpiresAt is the moment the code stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`

	// Used records whether the code has already been consumed.
	Used bool `json:"used"`

	// CreatedAt is the request timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PasswordReset model.
func (p PasswordReset) TableName() string {
	return "password_resets"
}
