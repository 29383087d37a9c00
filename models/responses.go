package models

import "github.com/shopspring/decimal"

// AuthResponse is the payload returned by signup and login: the signed
// session token and a minimal public view of the account.
type AuthResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// PublicUser is the identity subset safe to return to clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// MessageResponse is a generic `{"message": ...}` body used for simple
// confirmations and classified errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// BalanceResponse reports a wallet balance, optionally with a confirmation
// message (deposits).
type BalanceResponse struct {
	Message string          `json:"message,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// InvestResponse confirms a created investment with its projected value and
// maturity date (formatted as YYYY-MM-DD).
type InvestResponse struct {
	Message        string          `json:"message"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	MaturityDate   string          `json:"maturity_date"`
}

// HealthResponse reports service liveness and database reachability.
type HealthResponse struct {
	Status string `json:"status"`
	DB     bool   `json:"db"`
}

// PasswordStrength is the result of the password-strength heuristic:
// a label from "Very Weak" to "Very Strong" and the unmet rules as
// actionable suggestions.
type PasswordStrength struct {
	Strength    string   `json:"strength"`
	Suggestions []string `json:"suggestions"`
}
