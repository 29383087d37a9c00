package service

import (
	"context"

	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

type AuthService interface {
	Register(ctx context.Context, user models.User, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateRiskAppetite(ctx context.Context, userID int64, riskAppetite string) error

	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, email, otp, newPassword string) error
	CheckPasswordStrength(password string) models.PasswordStrength
}

type ProductService interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, productID int64) (models.Product, error)
	Update(ctx context.Context, productID int64, update models.ProductUpdate) error
	Delete(ctx context.Context, productID int64) error
}

type InvestmentService interface {
	Invest(ctx context.Context, userID, productID int64, amount decimal.Decimal) (models.Investment, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	Wallet(ctx context.Context, userID int64) (decimal.Decimal, error)
	Portfolio(ctx context.Context, userID int64) (models.Portfolio, error)
	ListInvestments(ctx context.Context, userID int64) ([]models.PortfolioItem, error)
	Insights(ctx context.Context, userID int64) (models.Insights, error)
}

type LogService interface {
	LogsForUser(ctx context.Context, userID int64) ([]models.TransactionLog, error)
}
