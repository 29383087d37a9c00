// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/MKhiriev/go-invest-hub/internal/config"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn              func(ctx context.Context, user models.User, password string) (models.User, error)
	loginFn                 func(ctx context.Context, email, password string) (models.User, error)
	createTokenFn           func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn            func(ctx context.Context, tokenString string) (models.Token, error)
	profileFn               func(ctx context.Context, userID int64) (models.User, error)
	updateRiskAppetiteFn    func(ctx context.Context, userID int64, riskAppetite string) error
	requestResetFn          func(ctx context.Context, email string) error
	confirmResetFn          func(ctx context.Context, email, otp, newPassword string) error
	checkPasswordStrengthFn func(password string) models.PasswordStrength
}

func (m *mockAuthService) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	return m.registerFn(ctx, user, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAuthService) UpdateRiskAppetite(ctx context.Context, userID int64, riskAppetite string) error {
	return m.updateRiskAppetiteFn(ctx, userID, riskAppetite)
}

func (m *mockAuthService) RequestReset(ctx context.Context, email string) error {
	return m.requestResetFn(ctx, email)
}

func (m *mockAuthService) ConfirmReset(ctx context.Context, email, otp, newPassword string) error {
	return m.confirmResetFn(ctx, email, otp, newPassword)
}

func (m *mockAuthService) CheckPasswordStrength(password string) models.PasswordStrength {
	return m.checkPasswordStrengthFn(password)
}

// mockProductService implements service.ProductService for unit tests.
type mockProductService struct {
	createFn func(ctx context.Context, product models.Product) (models.Product, error)
	listFn   func(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	getFn    func(ctx context.Context, productID int64) (models.Product, error)
	updateFn func(ctx context.Context, productID int64, update models.ProductUpdate) error
	deleteFn func(ctx context.Context, productID int64) error
}

func (m *mockProductService) Create(ctx context.Context, product models.Product) (models.Product, error) {
	return m.createFn(ctx, product)
}

func (m *mockProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return m.listFn(ctx, filter)
}

func (m *mockProductService) Get(ctx context.Context, productID int64) (models.Product, error) {
	return m.getFn(ctx, productID)
}

func (m *mockProductService) Update(ctx context.Context, productID int64, update models.ProductUpdate) error {
	return m.updateFn(ctx, productID, update)
}

func (m *mockProductService) Delete(ctx context.Context, productID int64) error {
	return m.deleteFn(ctx, productID)
}

// mockInvestmentService implements service.InvestmentService for unit tests.
type mockInvestmentService struct {
	investFn          func(ctx context.Context, userID, productID int64, amount decimal.Decimal) (models.Investment, error)
	depositFn         func(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	walletFn          func(ctx context.Context, userID int64) (decimal.Decimal, error)
	portfolioFn       func(ctx context.Context, userID int64) (models.Portfolio, error)
	listInvestmentsFn func(ctx context.Context, userID int64) ([]models.PortfolioItem, error)
	insightsFn        func(ctx context.Context, userID int64) (models.Insights, error)
}

func (m *mockInvestmentService) Invest(ctx context.Context, userID, productID int64, amount decimal.Decimal) (models.Investment, error) {
	return m.investFn(ctx, userID, productID, amount)
}

func (m *mockInvestmentService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return m.depositFn(ctx, userID, amount)
}

func (m *mockInvestmentService) Wallet(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return m.walletFn(ctx, userID)
}

func (m *mockInvestmentService) Portfolio(ctx context.Context, userID int64) (models.Portfolio, error) {
	return m.portfolioFn(ctx, userID)
}

func (m *mockInvestmentService) ListInvestments(ctx context.Context, userID int64) ([]models.PortfolioItem, error) {
	return m.listInvestmentsFn(ctx, userID)
}

func (m *mockInvestmentService) Insights(ctx context.Context, userID int64) (models.Insights, error) {
	return m.insightsFn(ctx, userID)
}

// mockLogService implements service.LogService for unit tests.
type mockLogService struct {
	logsForUserFn func(ctx context.Context, userID int64) ([]models.TransactionLog, error)
}

func (m *mockLogService) LogsForUser(ctx context.Context, userID int64) ([]models.TransactionLog, error) {
	return m.logsForUserFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Mock transport dependencies
// ─────────────────────────────────────────────

// mockAuditor captures enqueued audit records for inspection.
type mockAuditor struct {
	mu      sync.Mutex
	records []models.TransactionLog
}

func (m *mockAuditor) Enqueue(record models.TransactionLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
}

func (m *mockAuditor) all() []models.TransactionLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.TransactionLog(nil), m.records...)
}

// mockPinger reports a configurable database health state.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error {
	return m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const adminEmail = "admin@invest-hub.io"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey: "test-sign-key",
		TokenIssuer:  "invest-hub-test",
		AdminEmails:  []string{adminEmail},
	}
}

// newTestHandler builds a Handler around the given mock services.
// Nil services may be passed for surfaces a test does not touch.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs == nil {
		svcs = &service.Services{}
	}
	return NewHandler(svcs, &mockAuditor{}, &mockPinger{}, testAppConfig(), logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// withIdentity returns ctx carrying an authenticated user id and email, the
// way the auth middleware stores them.
func withIdentity(ctx context.Context, userID int64, email string) context.Context {
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
	return context.WithValue(ctx, utils.EmailCtxKey, email)
}
