package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidAmount = errors.New("invalid amount")

	ErrOTPInvalid = errors.New("invalid OTP")
	ErrOTPUsed    = errors.New("OTP already used")
	ErrOTPExpired = errors.New("OTP expired")
)

// AmountBoundsError reports an investment amount outside the product's
// bounds. It carries the exact client-facing message because the bound value
// is only known at check time.
type AmountBoundsError struct {
	Message string
}

func (e *AmountBoundsError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidAmount) match any bounds violation.
func (e *AmountBoundsError) Is(target error) bool {
	return target == ErrInvalidAmount
}
