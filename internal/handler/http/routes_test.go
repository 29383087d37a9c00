package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routerFixture wires a full router with a real JWT round trip: ParseToken
// delegates to the same utils the production auth service uses.
func routerFixture(t *testing.T) (http.Handler, *mockAuditor, *mockInvestmentService, *mockProductService) {
	t.Helper()
	cfg := testAppConfig()

	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			return utils.ValidateAndParseJWTToken(tokenString, cfg.TokenSignKey, cfg.TokenIssuer)
		},
	}
	investments := &mockInvestmentService{}
	products := &mockProductService{}

	auditor := &mockAuditor{}
	h := NewHandler(&service.Services{
		AuthService:       auth,
		ProductService:    products,
		InvestmentService: investments,
	}, auditor, &mockPinger{}, cfg, logger.Nop())

	return h.Init(), auditor, investments, products
}

func bearer(t *testing.T, userID int64, email string) string {
	t.Helper()
	cfg := testAppConfig()
	token, err := utils.GenerateJWTToken(cfg.TokenIssuer, userID, email, time.Hour, cfg.TokenSignKey)
	require.NoError(t, err)
	return "Bearer " + token.SignedString
}

// TestRouter_DocumentedPathsMountedAtRoot verifies the route table carries no
// extra prefix: the paths clients are given resolve exactly as written.
func TestRouter_DocumentedPathsMountedAtRoot(t *testing.T) {
	cfg := testAppConfig()
	auth := &mockAuthService{
		registerFn: func(_ context.Context, u models.User, _ string) (models.User, error) {
			u.UserID = 1
			return u, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken("signed.jwt.token"), nil
		},
	}
	products := &mockProductService{
		listFn: func(_ context.Context, _ models.ProductFilter) ([]models.Product, error) {
			return []models.Product{}, nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth, ProductService: products}, &mockAuditor{}, &mockPinger{}, cfg, logger.Nop())
	router := h.Init()

	signupBody := `{"first_name":"Alice","email":"alice@example.com","password":"s3cret!A1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(signupBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestRouter_PublicEndpointNeedsNoToken exercises the whole middleware chain
// for an unauthenticated request.
func TestRouter_PublicEndpointNeedsNoToken(t *testing.T) {
	router, auditor, _, products := routerFixture(t)
	products.listFn = func(_ context.Context, _ models.ProductFilter) ([]models.Product, error) {
		return []models.Product{}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	records := auditor.all()
	require.Len(t, records, 1)
	assert.Nil(t, records[0].UserID)
}

func TestRouter_ProtectedEndpointRejectsMissingToken(t *testing.T) {
	router, auditor, _, _ := routerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/invest/wallet", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing token")

	records := auditor.all()
	require.Len(t, records, 1)
	require.NotNil(t, records[0].ErrorMessage)
	assert.Equal(t, "Missing token", *records[0].ErrorMessage)
}

// TestRouter_ProtectedEndpointWithToken verifies the token issued by the
// shared helper passes the auth middleware and reaches the handler, and that
// the audit record carries the re-resolved identity.
func TestRouter_ProtectedEndpointWithToken(t *testing.T) {
	router, auditor, investments, _ := routerFixture(t)
	investments.walletFn = func(_ context.Context, _ int64) (decimal.Decimal, error) {
		return decimal.RequireFromString("100000.00"), nil
	}

	req := httptest.NewRequest(http.MethodGet, "/invest/wallet", nil)
	req.Header.Set("Authorization", bearer(t, 7, "alice@example.com"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	records := auditor.all()
	require.Len(t, records, 1)
	require.NotNil(t, records[0].UserID)
	assert.Equal(t, int64(7), *records[0].UserID)
}

// TestRouter_AdminGate verifies the catalog write surface enforces the
// allow-list after authentication.
func TestRouter_AdminGate(t *testing.T) {
	router, _, _, products := routerFixture(t)
	products.createFn = func(_ context.Context, product models.Product) (models.Product, error) {
		return product, nil
	}

	body := `{"name":"Treasury Bond 2031","investment_type":"bond","tenure_months":60,"annual_yield":"7.1","risk_level":"low"}`

	t.Run("non-admin is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Authorization", bearer(t, 7, "alice@example.com"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		req.Header.Set("Authorization", bearer(t, 1, adminEmail))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
