package models

import "time"

// Risk appetite and product risk levels share the same vocabulary.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// ValidRiskLevel reports whether level is one of the accepted risk values.
func ValidRiskLevel(level string) bool {
	return level == RiskLow || level == RiskModerate || level == RiskHigh
}

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// FirstName is the user's given name, required at signup.
	FirstName string `json:"first_name"`

	// LastName is the user's family name. Optional.
	LastName string `json:"last_name"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// Never exposed via JSON and never holds plaintext.
	PasswordHash string `json:"-"`

	// RiskAppetite is the user's self-declared risk tolerance:
	// one of "low", "moderate", "high". Defaults to "moderate".
	RiskAppetite string `json:"risk_appetite"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
