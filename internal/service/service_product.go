package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

// defaultMinInvestment is applied when a product is created without an
// explicit minimum.
var defaultMinInvestment = decimal.NewFromInt(1000)

// productService is the concrete implementation of ProductService.
//
// Product descriptions are never taken from the client: Create discards any
// submitted text and derives the description deterministically from the
// structured fields.
type productService struct {
	productRepository store.ProductRepository
	logger            *logger.Logger
}

// NewProductService constructs a ProductService wired to the given repository.
func NewProductService(productRepository store.ProductRepository, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		logger:            logger,
	}
}

// Create validates and persists a new catalog entry.
//
// Validation: non-empty name, known investment type, tenure ≥ 1 month,
// positive yield, known risk level, non-negative minimum. A zero minimum
// defaults to 1000. The description is always generated server-side.
func (p *productService) Create(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	if product.Name == "" ||
		!models.ValidProductType(product.Type) ||
		product.TenureMonths < 1 ||
		!product.AnnualYield.IsPositive() ||
		!models.ValidRiskLevel(product.RiskLevel) {
		log.Error().Str("name", product.Name).Str("type", product.Type).Msg("invalid product data provided")
		return models.Product{}, ErrInvalidDataProvided
	}
	if product.MinInvestment.IsNegative() {
		return models.Product{}, ErrInvalidDataProvided
	}
	if product.MaxInvestment != nil && product.MaxInvestment.LessThan(product.MinInvestment) {
		return models.Product{}, ErrInvalidDataProvided
	}

	if product.MinInvestment.IsZero() {
		product.MinInvestment = defaultMinInvestment
	}
	product.Description = generateDescription(product)

	created, err := p.productRepository.CreateProduct(ctx, product)
	if err != nil {
		log.Err(err).Str("name", product.Name).Msg("product creation ended with error")
		return models.Product{}, fmt.Errorf("product creation ended with error: %w", err)
	}

	return created, nil
}

// List returns catalog entries, optionally filtered by type and risk level.
func (p *productService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := p.productRepository.GetProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product listing ended with error: %w", err)
	}

	return products, nil
}

// Get returns a single catalog entry.
func (p *productService) Get(ctx context.Context, productID int64) (models.Product, error) {
	product, err := p.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return models.Product{}, fmt.Errorf("product lookup ended with error: %w", err)
	}

	return product, nil
}

// Update applies a partial update to a catalog entry.
//
// An update touching no fields is rejected with ErrInvalidDataProvided.
// Provided type and risk values are validated; the description, if present,
// is taken as-is (it was either generated at creation or deliberately
// overridden by an operator).
func (p *productService) Update(ctx context.Context, productID int64, update models.ProductUpdate) error {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return ErrInvalidDataProvided
	}
	if update.Type != nil && !models.ValidProductType(*update.Type) {
		return ErrInvalidDataProvided
	}
	if update.RiskLevel != nil && !models.ValidRiskLevel(*update.RiskLevel) {
		return ErrInvalidDataProvided
	}

	if err := p.productRepository.UpdateProduct(ctx, productID, update); err != nil {
		log.Err(err).Int64("product_id", productID).Msg("product update ended with error")
		return fmt.Errorf("product update ended with error: %w", err)
	}

	return nil
}

// Delete removes a catalog entry.
func (p *productService) Delete(ctx context.Context, productID int64) error {
	log := logger.FromContext(ctx)

	if err := p.productRepository.DeleteProduct(ctx, productID); err != nil {
		log.Err(err).Int64("product_id", productID).Msg("product deletion ended with error")
		return fmt.Errorf("product deletion ended with error: %w", err)
	}

	return nil
}

// generateDescription renders the client-facing product description from the
// structured fields. The output is fully determined by the input, so the
// same product always gets the same text.
func generateDescription(product models.Product) string {
	var typeDescription string
	switch product.Type {
	case models.ProductBond:
		typeDescription = "As a corporate bond, it offers a predictable return stream, making it a reliable choice."
	case models.ProductFD:
		typeDescription = "This Fixed Deposit (FD) provides a guaranteed return, ensuring your capital is secure."
	case models.ProductMF:
		typeDescription = "This Mutual Fund (MF) diversifies your investment across various assets, managed by professional fund managers."
	case models.ProductETF:
		typeDescription = "As an Exchange Traded Fund (ETF), it offers the diversification of a mutual fund with the flexibility of stock trading."
	default:
		typeDescription = "This is a unique investment opportunity with distinct characteristics."
	}

	minInvestment := product.MinInvestment
	if minInvestment.IsZero() {
		minInvestment = defaultMinInvestment
	}

	return fmt.Sprintf("%s is a promising investment opportunity providing a solid annual yield of %s%%. "+
		"With a lock-in period of %d months, it's designed for medium to long-term growth. "+
		"%s The minimum investment required is %s. "+
		"With a %s risk profile, it is best suited for investors with a corresponding appetite for risk.",
		product.Name, product.AnnualYield.String(), product.TenureMonths,
		typeDescription, formatINR(minInvestment), product.RiskLevel)
}

// formatINR renders an amount as Indian rupees with lakh/crore digit
// grouping and two decimal places, e.g. 100000 → "₹1,00,000.00".
func formatINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		// last three digits form one group, the rest pair up
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		grouped = strings.Join(append(groups, tail), ",")
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + "₹" + grouped + "." + fracPart
}
