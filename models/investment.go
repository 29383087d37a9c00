package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment status values. No code path changes status after creation;
// matured/cancelled exist for operator tooling and future lifecycle work.
const (
	InvestmentActive    = "active"
	InvestmentMatured   = "matured"
	InvestmentCancelled = "cancelled"
)

// Investment is a user's purchase of a Product for a principal amount,
// with the expected maturity value computed at creation time.
// Immutable after creation.
type Investment struct {
	// InvestmentID is the internal unique identifier of the investment.
	InvestmentID int64 `json:"id"`

	// UserID identifies the owning account.
	UserID int64 `json:"user_id"`

	// ProductID references the purchased catalog entry.
	ProductID int64 `json:"product_id"`

	// Amount is the invested principal.
	Amount decimal.Decimal `json:"amount"`

	// ExpectedReturn is the projected maturity value, rounded to 2 decimals:
	// amount * (1 + annual_yield/100) ^ (tenure_months/12).
	ExpectedReturn decimal.Decimal `json:"expected_return"`

	// MaturityDate is the calendar date the investment matures
	// (created date plus tenure months).
	MaturityDate time.Time `json:"maturity_date"`

	// Status is "active" at creation; see the status constants.
	Status string `json:"status"`

	// InvestedAt is the creation timestamp.
	InvestedAt time.Time `json:"invested_at"`
}

// TableName returns the name of the database table
// associated with the Investment model.
func (i Investment) TableName() string {
	return "investments"
}

// PortfolioItem is an investment joined with the display fields of its
// product, as returned by the portfolio listing.
type PortfolioItem struct {
	Investment

	// ProductName is the catalog display name of the purchased product.
	ProductName string `json:"name"`

	// ProductType is the product classification (bond, fd, mf, etf, other).
	ProductType string `json:"investment_type"`

	// AnnualYield is the product's yearly return percentage.
	AnnualYield decimal.Decimal `json:"annual_yield"`

	// TenureMonths is the product's lock-in period.
	TenureMonths int `json:"tenure_months"`
}

// PortfolioSummary aggregates principal and projected value across every
// investment of a user, with no status filter.
type PortfolioSummary struct {
	TotalInvested decimal.Decimal `json:"totalInvested"`
	TotalExpected decimal.Decimal `json:"totalExpected"`
}

// Portfolio is the full portfolio response payload.
type Portfolio struct {
	Summary     PortfolioSummary `json:"summary"`
	Investments []PortfolioItem  `json:"investments"`
}

// RiskSlice is one active investment reduced to the fields the insights
// derivation needs: the principal and the product's risk class.
type RiskSlice struct {
	Amount    decimal.Decimal
	RiskLevel string
}

// Insights is the derived risk-distribution summary of a portfolio.
type Insights struct {
	// RiskProfile is the dominant risk label: conservative, moderate,
	// aggressive, balanced, or "N/A" for an empty portfolio.
	RiskProfile string `json:"riskProfile"`

	// Summary is a natural-language description comparing the dominant
	// label with the user's stated risk appetite.
	Summary string `json:"summary"`

	// Distribution maps risk level to the percentage of total principal
	// held at that level, formatted with one decimal place.
	Distribution map[string]string `json:"distribution"`
}
