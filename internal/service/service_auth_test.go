package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-invest-hub/internal/config"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/mock"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:   "test-sign-key",
		TokenIssuer:    "invest-hub-test",
		TokenDuration:  time.Hour,
		InitialBalance: "100000.00",
		OTPTTL:         10 * time.Minute,
	}
}

func newTestAuthSvc(ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository, *mock.MockWalletRepository, *mock.MockPasswordResetRepository) {
	users := mock.NewMockUserRepository(ctrl)
	wallets := mock.NewMockWalletRepository(ctrl)
	resets := mock.NewMockPasswordResetRepository(ctrl)
	svc := NewAuthService(users, wallets, resets, testAppConfig(), logger.Nop())
	return svc, users, wallets, resets
}

func TestAuthService_Register_SeedsWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, wallets, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	user := models.User{FirstName: "Asha", Email: "asha@example.com"}

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			// the plain password must never reach the repository
			assert.NotEqual(t, "Sup3r$ecret", u.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Sup3r$ecret")))
			assert.Equal(t, models.RiskModerate, u.RiskAppetite)
			u.UserID = 1
			return u, nil
		})
	wallets.EXPECT().
		CreateWallet(ctx, int64(1), decimal.RequireFromString("100000.00")).
		Return(nil)

	registered, err := svc.Register(ctx, user, "Sup3r$ecret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Email: "a@b.c"}, "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(ctx, models.User{FirstName: "Asha", Email: "a@b.c"}, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(ctx, models.User{FirstName: "Asha", Email: "a@b.c", RiskAppetite: "reckless"}, "pw")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.Register(ctx, models.User{FirstName: "Asha", Email: "a@b.c"}, "pw")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcryptCost)
	require.NoError(t, err)

	users.EXPECT().
		FindUserByEmail(ctx, "asha@example.com").
		Return(models.User{UserID: 1, Email: "asha@example.com", PasswordHash: string(hash)}, nil)

	user, err := svc.Login(ctx, "asha@example.com", "Sup3r$ecret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcryptCost)
	users.EXPECT().
		FindUserByEmail(ctx, "asha@example.com").
		Return(models.User{UserID: 1, PasswordHash: string(hash)}, nil)

	_, err := svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailNotRevealed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().
		FindUserByEmail(ctx, "nobody@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_TokenRoundtrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42, Email: "asha@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, "asha@example.com", parsed.Email)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestAuthSvc(ctrl)

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RequestReset_StoresSixDigitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, resets := newTestAuthSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().
		FindUserByEmail(ctx, "asha@example.com").
		Return(models.User{UserID: 1, Email: "asha@example.com"}, nil)
	resets.EXPECT().
		CreateReset(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, reset models.PasswordReset) error {
			assert.Len(t, reset.OTP, 6)
			assert.NotEmpty(t, reset.ID)
			assert.Equal(t, int64(1), reset.UserID)
			assert.WithinDuration(t, time.Now().Add(10*time.Minute), reset.ExpiresAt, time.Minute)
			return nil
		})

	require.NoError(t, svc.RequestReset(ctx, "asha@example.com"))
}

func TestAuthService_RequestReset_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, _ := newTestAuthSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().
		FindUserByEmail(ctx, "nobody@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	err := svc.RequestReset(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_ConfirmReset_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _, resets := newTestAuthSvc(ctrl)
	ctx := context.Background()

	resets.EXPECT().
		FindLatestReset(ctx, "asha@example.com", "482913").
		Return(models.PasswordReset{ID: "reset-id", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}, nil)
	users.EXPECT().
		UpdatePassword(ctx, int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("N3w$ecret")))
			return nil
		})
	resets.EXPECT().MarkResetUsed(ctx, "reset-id").Return(nil)

	require.NoError(t, svc.ConfirmReset(ctx, "asha@example.com", "482913", "N3w$ecret"))
}

func TestAuthService_ConfirmReset_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, resets := newTestAuthSvc(ctrl)
	ctx := context.Background()

	resets.EXPECT().
		FindLatestReset(ctx, "a@b.c", "000000").
		Return(models.PasswordReset{}, store.ErrResetNotFound)
	assert.ErrorIs(t, svc.ConfirmReset(ctx, "a@b.c", "000000", "pw"), ErrOTPInvalid)

	resets.EXPECT().
		FindLatestReset(ctx, "a@b.c", "482913").
		Return(models.PasswordReset{Used: true, ExpiresAt: time.Now().Add(time.Minute)}, nil)
	assert.ErrorIs(t, svc.ConfirmReset(ctx, "a@b.c", "482913", "pw"), ErrOTPUsed)

	resets.EXPECT().
		FindLatestReset(ctx, "a@b.c", "482913").
		Return(models.PasswordReset{ExpiresAt: time.Now().Add(-time.Minute)}, nil)
	assert.ErrorIs(t, svc.ConfirmReset(ctx, "a@b.c", "482913", "pw"), ErrOTPExpired)
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		strength    string
		suggestions int
	}{
		{"all rules met", "Str0ng!pass", "Very Strong", 0},
		{"three rules met", "Str0ngpass", "Strong", 1},
		{"two rules met", "strongpass1", "Moderate", 2},
		{"one rule met", "weakpass", "Weak", 3},
		{"empty password", "", "Very Weak", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkPasswordStrength(tt.password)
			assert.Equal(t, tt.strength, got.Strength)
			assert.Len(t, got.Suggestions, tt.suggestions)
		})
	}
}
