package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accepted product types.
const (
	ProductBond  = "bond"
	ProductFD    = "fd"
	ProductMF    = "mf"
	ProductETF   = "etf"
	ProductOther = "other"
)

// ValidProductType reports whether t is one of the accepted product types.
func ValidProductType(t string) bool {
	switch t {
	case ProductBond, ProductFD, ProductMF, ProductETF, ProductOther:
		return true
	}
	return false
}

// Product is an investable instrument offered in the catalog.
// Created and mutated only by admin identities; readable by everyone.
type Product struct {
	// ProductID is the internal unique identifier of the product.
	ProductID int64 `json:"id"`

	// Name is the display name of the instrument.
	Name string `json:"name"`

	// Type classifies the instrument: bond, fd, mf, etf or other.
	Type string `json:"investment_type"`

	// TenureMonths is the lock-in period in calendar months.
	TenureMonths int `json:"tenure_months"`

	// AnnualYield is the yearly return percentage (e.g. "7.50").
	AnnualYield decimal.Decimal `json:"annual_yield"`

	// RiskLevel is the instrument's risk class: low, moderate or high.
	RiskLevel string `json:"risk_level"`

	// MinInvestment is the smallest accepted principal.
	MinInvestment decimal.Decimal `json:"min_investment"`

	// MaxInvestment is the largest accepted principal. Nil means unbounded.
	MaxInvestment *decimal.Decimal `json:"max_investment"`

	// Description is derived server-side from the structured fields at
	// creation time; client-supplied text is discarded.
	Description string `json:"description"`

	// CreatedAt is the catalog insertion timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "investment_products"
}

// ProductUpdate describes a partial update of a catalog entry.
// Nil fields are left untouched by the store layer.
type ProductUpdate struct {
	Name          *string          `json:"name"`
	Type          *string          `json:"investment_type"`
	TenureMonths  *int             `json:"tenure_months"`
	AnnualYield   *decimal.Decimal `json:"annual_yield"`
	RiskLevel     *string          `json:"risk_level"`
	MinInvestment *decimal.Decimal `json:"min_investment"`
	MaxInvestment *decimal.Decimal `json:"max_investment"`
	Description   *string          `json:"description"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Type == nil && u.TenureMonths == nil &&
		u.AnnualYield == nil && u.RiskLevel == nil &&
		u.MinInvestment == nil && u.MaxInvestment == nil && u.Description == nil
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Type      string
	RiskLevel string
}
