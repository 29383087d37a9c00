// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubToken returns a models.Token with the given signed string.
func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{AuthService: auth})
}

// ─────────────────────────────────────────────
// signup
// ─────────────────────────────────────────────

// TestSignup_Success verifies that a valid signup results in 201 Created with
// the issued token and a public view of the account.
func TestSignup_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerFn: func(_ context.Context, u models.User, password string) (models.User, error) {
			assert.Equal(t, "s3cret!A1", password)
			u.UserID = 7
			return u, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, signupRequest{FirstName: "Alice", Email: "alice@example.com", Password: "s3cret!A1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, signedToken, resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

// TestSignup_InvalidJSON verifies that a malformed request body results in
// 400 Bad Request.
func TestSignup_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

// TestSignup_MissingFields verifies that service.ErrInvalidDataProvided maps
// to 400 with the required-fields message.
func TestSignup_MissingFields(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.User, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "first_name, email, password required")
}

// TestSignup_DuplicateEmail verifies that store.ErrEmailAlreadyExists maps to
// 409 Conflict.
func TestSignup_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.User, _ string) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, signupRequest{FirstName: "Alice", Email: "alice@example.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}

// TestSignup_UnexpectedError verifies that an unknown registration error maps
// to 500 without leaking the internal message.
func TestSignup_UnexpectedError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.User, _ string) (models.User, error) {
			return models.User{}, errors.New("db connection lost")
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, signupRequest{FirstName: "Alice", Email: "alice@example.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db connection lost")
}

// TestSignup_CreateTokenFails verifies that a token creation failure after a
// successful registration maps to 500.
func TestSignup_CreateTokenFails(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, u models.User, _ string) (models.User, error) {
			return u, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{}, errors.New("signing failed")
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, signupRequest{FirstName: "Alice", Email: "alice@example.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.signup(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

// TestLogin_Success verifies 200 OK with token and user payload.
func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (models.User, error) {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "pw", password)
			return models.User{UserID: 7, Email: email}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, loginRequest{Email: "alice@example.com", Password: "pw"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, signedToken, resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
}

// TestLogin_MissingFields verifies the 400 required-fields message.
func TestLogin_MissingFields(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email and password required")
}

// TestLogin_InvalidCredentials verifies that both unknown emails and wrong
// passwords map to the same 401 response.
func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, loginRequest{Email: "alice@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

// ─────────────────────────────────────────────
// password strength
// ─────────────────────────────────────────────

// TestPasswordStrength_ForwardsPassword verifies the heuristic result is
// returned verbatim.
func TestPasswordStrength_ForwardsPassword(t *testing.T) {
	auth := &mockAuthService{
		checkPasswordStrengthFn: func(password string) models.PasswordStrength {
			assert.Equal(t, "Str0ng!Pass", password)
			return models.PasswordStrength{Strength: "Very Strong", Suggestions: []string{}}
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/password-strength", strings.NewReader(`{"password":"Str0ng!Pass"}`))
	rec := httptest.NewRecorder()

	h.passwordStrength(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Very Strong")
}

// TestPasswordStrength_MissingPassword verifies that an absent or malformed
// body is scored as an empty password instead of being rejected.
func TestPasswordStrength_MissingPassword(t *testing.T) {
	auth := &mockAuthService{
		checkPasswordStrengthFn: func(password string) models.PasswordStrength {
			assert.Empty(t, password)
			return models.PasswordStrength{Strength: "Very Weak", Suggestions: []string{"Use at least 8 characters."}}
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/password-strength", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.passwordStrength(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Very Weak")
}

// ─────────────────────────────────────────────
// request-reset
// ─────────────────────────────────────────────

func TestRequestReset_Success(t *testing.T) {
	auth := &mockAuthService{
		requestResetFn: func(_ context.Context, email string) error {
			assert.Equal(t, "alice@example.com", email)
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/request-reset", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()

	h.requestReset(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OTP generated and (for test) logged to server console")
}

func TestRequestReset_EmailRequired(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/request-reset", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.requestReset(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email required")
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	auth := &mockAuthService{
		requestResetFn: func(_ context.Context, _ string) error {
			return store.ErrNoUserWasFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/request-reset", strings.NewReader(`{"email":"ghost@example.com"}`))
	rec := httptest.NewRecorder()

	h.requestReset(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No user found")
}

// ─────────────────────────────────────────────
// reset
// ─────────────────────────────────────────────

func TestResetPassword_Success(t *testing.T) {
	auth := &mockAuthService{
		confirmResetFn: func(_ context.Context, email, otp, newPassword string) error {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "123456", otp)
			assert.Equal(t, "NewPass1!", newPassword)
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/auth/reset",
		strings.NewReader(`{"email":"alice@example.com","otp":"123456","newPassword":"NewPass1!"}`))
	rec := httptest.NewRecorder()

	h.resetPassword(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password changed")
}

func TestResetPassword_MissingFields(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/reset", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()

	h.resetPassword(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email, otp, newPassword required")
}

// TestResetPassword_OTPFailures verifies the three classified OTP errors map
// to 400 with their distinct messages.
func TestResetPassword_OTPFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"invalid", service.ErrOTPInvalid, "Invalid OTP"},
		{"already used", service.ErrOTPUsed, "OTP already used"},
		{"expired", service.ErrOTPExpired, "OTP expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				confirmResetFn: func(_ context.Context, _, _, _ string) error {
					return tt.err
				},
			}

			h := newHandlerWithAuth(t, auth)
			req := httptest.NewRequest(http.MethodPost, "/auth/reset",
				strings.NewReader(`{"email":"alice@example.com","otp":"000000","newPassword":"NewPass1!"}`))
			rec := httptest.NewRecorder()

			h.resetPassword(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}
