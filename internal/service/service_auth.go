package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/MKhiriev/go-invest-hub/internal/config"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used when the accounts were first
// created, so existing hashes keep verifying.
const bcryptCost = 10

// authService is the concrete implementation of AuthService.
// It handles account registration with wallet seeding, credential
// verification, JWT token lifecycle, profile access, and the one-time-code
// password reset flow.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// walletRepository seeds the opening balance for new accounts.
	walletRepository store.WalletRepository

	// resetRepository persists single-use password reset codes.
	resetRepository store.PasswordResetRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// initialBalance is the opening wallet balance credited at signup.
	initialBalance decimal.Decimal

	// otpTTL controls how long a generated reset code stays valid.
	otpTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	walletRepository store.WalletRepository,
	resetRepository store.PasswordResetRepository,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:   userRepository,
		walletRepository: walletRepository,
		resetRepository:  resetRepository,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		initialBalance:   cfg.InitialBalanceDecimal(),
		otpTTL:           cfg.OTPTTL,
		logger:           logger,
	}
}

// Register creates a new account and credits its wallet with the configured
// opening balance.
//
// FirstName, Email and password are required; risk appetite defaults to
// moderate when absent and must otherwise be one of low/moderate/high.
// The password is stored as a bcrypt hash.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided on missing/invalid fields.
//   - A wrapped storage error if persistence fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
//
// The wallet seed INSERT is a no-op when the wallet row already exists, so
// the opening balance can never be credited twice.
func (a *authService) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.FirstName == "" || user.Email == "" || password == "" {
		log.Error().Str("email", user.Email).Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if user.RiskAppetite == "" {
		user.RiskAppetite = models.RiskModerate
	}
	if !models.ValidRiskLevel(user.RiskAppetite) {
		log.Error().Str("risk_appetite", user.RiskAppetite).Msg("invalid risk appetite provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = string(hash)

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err := a.walletRepository.CreateWallet(ctx, registeredUser.UserID, a.initialBalance); err != nil {
		log.Err(err).Int64("user_id", registeredUser.UserID).Msg("wallet seeding ended with error")
		return models.User{}, fmt.Errorf("wallet seeding ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing account by email and password.
//
// A missing account and a wrong password both collapse into
// ErrInvalidCredentials so that the response does not reveal whether the
// email is registered.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Int64("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, binds the user id (sub) and email (custom
// claim), and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, bad signature)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Profile returns the account record of the given user.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user, nil
}

// UpdateRiskAppetite changes the account's stated risk appetite.
//
// Returns ErrInvalidDataProvided when the value is not one of
// low/moderate/high.
func (a *authService) UpdateRiskAppetite(ctx context.Context, userID int64, riskAppetite string) error {
	log := logger.FromContext(ctx)

	if !models.ValidRiskLevel(riskAppetite) {
		return ErrInvalidDataProvided
	}

	if err := a.userRepository.UpdateRiskAppetite(ctx, userID, riskAppetite); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("risk appetite update failed")
		return fmt.Errorf("risk appetite update failed: %w", err)
	}

	return nil
}

// RequestReset generates a single-use six-digit reset code for the account.
//
// The code is persisted with its expiry and surfaced to the operator through
// the server log only; no email leaves the system.
func (a *authService) RequestReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("reset requested for unknown account: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		log.Err(err).Msg("OTP generation failed")
		return fmt.Errorf("OTP generation failed: %w", err)
	}

	expiresAt := time.Now().Add(a.otpTTL)
	reset := models.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    user.UserID,
		Email:     email,
		OTP:       otp,
		ExpiresAt: expiresAt,
	}

	if err := a.resetRepository.CreateReset(ctx, reset); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("reset code persistence failed")
		return fmt.Errorf("reset code persistence failed: %w", err)
	}

	// Operator channel. A mail integration would replace this line.
	a.logger.Info().
		Str("email", email).
		Str("otp", otp).
		Time("expires_at", expiresAt).
		Msg("password reset OTP generated")

	return nil
}

// ConfirmReset consumes a reset code and replaces the account password.
//
// Only the newest code matching email+otp is considered. Returns:
//   - ErrOTPInvalid when no such code exists.
//   - ErrOTPUsed when the code was already consumed.
//   - ErrOTPExpired when the code is past its expiry.
//
// The password is updated before the code is marked used, mirroring the
// single-use guarantee enforced by the conditional UPDATE in the repository.
func (a *authService) ConfirmReset(ctx context.Context, email, otp, newPassword string) error {
	log := logger.FromContext(ctx)

	if email == "" || otp == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	reset, err := a.resetRepository.FindLatestReset(ctx, email, otp)
	if err != nil {
		if errors.Is(err, store.ErrResetNotFound) {
			return ErrOTPInvalid
		}

		log.Err(err).Str("email", email).Msg("reset lookup failed")
		return fmt.Errorf("reset lookup failed: %w", err)
	}

	if reset.Used {
		return ErrOTPUsed
	}
	if time.Now().After(reset.ExpiresAt) {
		return ErrOTPExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		log.Err(err).Int64("user_id", reset.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	if err := a.resetRepository.MarkResetUsed(ctx, reset.ID); err != nil {
		log.Err(err).Str("reset_id", reset.ID).Msg("marking reset used failed")
		return fmt.Errorf("marking reset used failed: %w", err)
	}

	return nil
}

// CheckPasswordStrength scores a candidate password against four rules
// (length, digit, uppercase, special character) and returns a verdict from
// Very Weak to Very Strong with one suggestion per unmet rule.
func (a *authService) CheckPasswordStrength(password string) models.PasswordStrength {
	return checkPasswordStrength(password)
}

func checkPasswordStrength(password string) models.PasswordStrength {
	suggestions := make([]string, 0, 4)

	if len(password) < 8 {
		suggestions = append(suggestions, "Use at least 8 characters.")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		suggestions = append(suggestions, "Include at least one number (0-9).")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		suggestions = append(suggestions, "Include at least one uppercase letter (A-Z).")
	}
	if !strings.ContainsFunc(password, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		suggestions = append(suggestions, "Include at least one special character (e.g., !@#$).")
	}

	strength := "Very Weak"
	switch 4 - len(suggestions) {
	case 4:
		strength = "Very Strong"
	case 3:
		strength = "Strong"
	case 2:
		strength = "Moderate"
	case 1:
		strength = "Weak"
	}

	return models.PasswordStrength{Strength: strength, Suggestions: suggestions}
}

// generateOTP draws a uniformly random six-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", 100000+n.Int64()), nil
}
