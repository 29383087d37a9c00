package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

// UserRepository persists account records and credential data.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateRiskAppetite(ctx context.Context, userID int64, riskAppetite string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// WalletRepository holds one balance per user, mutated only by deposits and
// the investment transaction.
type WalletRepository interface {
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	CreateWallet(ctx context.Context, userID int64, balance decimal.Decimal) error
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

// ProductRepository stores the investable product catalog.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProductByID(ctx context.Context, productID int64) (models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, update models.ProductUpdate) error
	DeleteProduct(ctx context.Context, productID int64) error
}

// InvestmentRepository records investments and reads portfolio projections.
//
// CreateInvestment runs the balance re-check, the investment INSERT, and the
// wallet decrement inside one database transaction with the wallet row locked,
// so concurrent investments by the same user serialize on the balance.
type InvestmentRepository interface {
	CreateInvestment(ctx context.Context, investment models.Investment) (models.Investment, error)
	GetPortfolio(ctx context.Context, userID int64) ([]models.PortfolioItem, error)
	GetActiveRiskSlices(ctx context.Context, userID int64) ([]models.RiskSlice, error)
}

// PasswordResetRepository persists single-use password reset codes.
type PasswordResetRepository interface {
	CreateReset(ctx context.Context, reset models.PasswordReset) error
	FindLatestReset(ctx context.Context, email, otp string) (models.PasswordReset, error)
	MarkResetUsed(ctx context.Context, resetID string) error
}

// TransactionLogRepository appends and reads the per-request audit trail.
type TransactionLogRepository interface {
	InsertLog(ctx context.Context, entry models.TransactionLog) error
	GetLogsByUser(ctx context.Context, userID int64) ([]models.TransactionLog, error)
}
