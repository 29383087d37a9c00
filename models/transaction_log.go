package models

import "time"

// TransactionLog is one append-only audit record describing a completed API
// request. Exactly one row is written per request, after the response has
// been sent, regardless of the request's outcome. Rows are never updated or
// deleted by the application.
type TransactionLog struct {
	// LogID is the internal unique identifier of the record.
	LogID int64 `json:"id"`

	// UserID is the identity resolved from the request's bearer token,
	// or nil for anonymous requests and requests with invalid tokens.
	UserID *int64 `json:"user_id,omitempty"`

	// Email is the email resolved from the bearer token, if any.
	Email *string `json:"email,omitempty"`

	// Endpoint is the request path including the query string.
	Endpoint string `json:"endpoint"`

	// Method is the HTTP method of the request.
	Method string `json:"http_method"`

	// StatusCode is the status of the completed response.
	StatusCode int `json:"status_code"`

	// ErrorMessage carries the classified or internal error text recorded
	// during request handling, or nil for successful requests.
	ErrorMessage *string `json:"error_message,omitempty"`

	// CreatedAt is the insertion timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the TransactionLog model.
func (t TransactionLog) TableName() string {
	return "transaction_logs"
}
