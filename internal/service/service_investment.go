package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

// investmentService is the concrete implementation of InvestmentService.
// It owns the investment precondition chain, the maturity projection, the
// wallet surface, and the portfolio/insights read models.
type investmentService struct {
	investmentRepository store.InvestmentRepository
	productRepository    store.ProductRepository
	walletRepository     store.WalletRepository
	userRepository       store.UserRepository
	logger               *logger.Logger
}

// NewInvestmentService constructs an InvestmentService wired to the given
// repositories.
func NewInvestmentService(
	investmentRepository store.InvestmentRepository,
	productRepository store.ProductRepository,
	walletRepository store.WalletRepository,
	userRepository store.UserRepository,
	logger *logger.Logger,
) InvestmentService {
	return &investmentService{
		investmentRepository: investmentRepository,
		productRepository:    productRepository,
		walletRepository:     walletRepository,
		userRepository:       userRepository,
		logger:               logger,
	}
}

// Invest executes an investment into the given product.
//
// Preconditions are checked in a fixed order, each failure short-circuiting:
//  1. Product must exist (store.ErrProductNotFound).
//  2. amount ≥ product minimum (ErrInvalidAmount with the bound in the message).
//  3. amount ≤ product maximum, when one is set (ErrInvalidAmount likewise).
//  4. amount ≤ wallet balance, enforced inside the repository transaction with
//     the wallet row locked (store.ErrInsufficientBalance). A missing wallet
//     counts as zero balance.
//
// The expected return is amount·(1+yield/100)^(months/12) rounded to two
// decimals; the maturity date is the investment date plus the tenure in
// calendar months.
func (s *investmentService) Invest(ctx context.Context, userID, productID int64, amount decimal.Decimal) (models.Investment, error) {
	log := logger.FromContext(ctx)

	if productID == 0 || !amount.IsPositive() {
		return models.Investment{}, ErrInvalidDataProvided
	}

	product, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return models.Investment{}, fmt.Errorf("product lookup ended with error: %w", err)
	}

	if amount.LessThan(product.MinInvestment) {
		return models.Investment{}, &AmountBoundsError{
			Message: fmt.Sprintf("Amount must be >= %s", product.MinInvestment),
		}
	}
	if product.MaxInvestment != nil && amount.GreaterThan(*product.MaxInvestment) {
		return models.Investment{}, &AmountBoundsError{
			Message: fmt.Sprintf("Amount must be <= %s", product.MaxInvestment),
		}
	}

	expectedReturn := projectedReturn(amount, product.AnnualYield, product.TenureMonths)
	maturityDate := time.Now().AddDate(0, product.TenureMonths, 0)

	investment := models.Investment{
		UserID:         userID,
		ProductID:      productID,
		Amount:         amount,
		ExpectedReturn: expectedReturn,
		MaturityDate:   maturityDate,
		Status:         models.InvestmentActive,
	}

	created, err := s.investmentRepository.CreateInvestment(ctx, investment)
	if err != nil {
		if errors.Is(err, store.ErrWalletNotFound) {
			// no wallet row means a zero balance
			return models.Investment{}, store.ErrInsufficientBalance
		}

		log.Err(err).Int64("user_id", userID).Int64("product_id", productID).Msg("investment creation ended with error")
		return models.Investment{}, fmt.Errorf("investment creation ended with error: %w", err)
	}

	return created, nil
}

// Deposit credits the user's wallet and returns the new balance, creating
// the wallet when the user does not have one yet.
func (s *investmentService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	if !amount.IsPositive() {
		return decimal.Zero, &AmountBoundsError{Message: "Valid amount required"}
	}

	newBalance, err := s.walletRepository.Deposit(ctx, userID, amount)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("deposit ended with error")
		return decimal.Zero, fmt.Errorf("deposit ended with error: %w", err)
	}

	return newBalance, nil
}

// Wallet returns the user's balance; a user without a wallet row has zero.
func (s *investmentService) Wallet(ctx context.Context, userID int64) (decimal.Decimal, error) {
	balance, err := s.walletRepository.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrWalletNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("balance lookup ended with error: %w", err)
	}

	return balance, nil
}

// Portfolio returns the user's investments, newest first, together with
// aggregate invested and expected totals over all rows regardless of status.
func (s *investmentService) Portfolio(ctx context.Context, userID int64) (models.Portfolio, error) {
	items, err := s.investmentRepository.GetPortfolio(ctx, userID)
	if err != nil {
		return models.Portfolio{}, fmt.Errorf("portfolio lookup ended with error: %w", err)
	}

	var summary models.PortfolioSummary
	summary.TotalInvested = decimal.Zero
	summary.TotalExpected = decimal.Zero
	for _, item := range items {
		summary.TotalInvested = summary.TotalInvested.Add(item.Amount)
		summary.TotalExpected = summary.TotalExpected.Add(item.ExpectedReturn)
	}

	return models.Portfolio{Summary: summary, Investments: items}, nil
}

// ListInvestments returns the user's investments with product display fields.
func (s *investmentService) ListInvestments(ctx context.Context, userID int64) ([]models.PortfolioItem, error) {
	items, err := s.investmentRepository.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("investment listing ended with error: %w", err)
	}

	return items, nil
}

// Insights derives the risk profile of the user's active investments.
//
// The user must exist (store.ErrNoUserWasFound otherwise). An empty active
// portfolio yields the N/A profile with an invitation to start investing.
func (s *investmentService) Insights(ctx context.Context, userID int64) (models.Insights, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.Insights{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	slices, err := s.investmentRepository.GetActiveRiskSlices(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("risk slice lookup ended with error")
		return models.Insights{}, fmt.Errorf("risk slice lookup ended with error: %w", err)
	}

	return deriveInsights(slices, user.RiskAppetite), nil
}

// projectedReturn computes amount·(1+yield/100)^(months/12) rounded to two
// decimals. The compounding runs in float64 and only the final figure is
// snapped back to a money value.
func projectedReturn(amount, annualYield decimal.Decimal, tenureMonths int) decimal.Decimal {
	amountF, _ := amount.Float64()
	rate, _ := annualYield.Float64()
	years := float64(tenureMonths) / 12

	maturity := amountF * math.Pow(1+rate/100, years)
	return decimal.NewFromFloat(maturity).Round(2)
}

// deriveInsights computes the percentage risk distribution of the active
// investments and labels the dominant posture.
//
// The label rules are evaluated in a fixed order with later rules taking
// precedence: low > 60% → conservative, high > 50% → aggressive,
// moderate > 60% → moderate, otherwise balanced. Comparisons use the values
// after rounding to one decimal, the same figures shown to the client.
func deriveInsights(slices []models.RiskSlice, riskAppetite string) models.Insights {
	if len(slices) == 0 {
		return models.Insights{
			RiskProfile:  "N/A",
			Summary:      "No investments found. Start investing to get personalized insights!",
			Distribution: map[string]string{},
		}
	}

	var total float64
	byLevel := map[string]float64{models.RiskLow: 0, models.RiskModerate: 0, models.RiskHigh: 0}
	for _, slice := range slices {
		amount, _ := slice.Amount.Float64()
		total += amount
		if _, known := byLevel[slice.RiskLevel]; known {
			byLevel[slice.RiskLevel] += amount
		}
	}

	pct := func(level string) float64 {
		raw := byLevel[level] / total * 100
		rounded, _ := strconv.ParseFloat(strconv.FormatFloat(raw, 'f', 1, 64), 64)
		return rounded
	}
	lowPct, moderatePct, highPct := pct(models.RiskLow), pct(models.RiskModerate), pct(models.RiskHigh)

	dominant := "balanced"
	if lowPct > 60 {
		dominant = "conservative"
	}
	if highPct > 50 {
		dominant = "aggressive"
	}
	if moderatePct > 60 {
		dominant = "moderate"
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
	summary := fmt.Sprintf(
		"Your portfolio appears to be %s. It is primarily composed of %s%% low-risk, %s%% moderate-risk, and %s%% high-risk assets.",
		dominant, format(lowPct), format(moderatePct), format(highPct),
	)

	if riskAppetite != "" && dominant != riskAppetite {
		summary += fmt.Sprintf(" This may be a mismatch with your stated risk appetite of '%s'. You might consider rebalancing to better align with your goals.", riskAppetite)
	} else {
		summary += fmt.Sprintf(" This aligns well with your stated risk appetite of '%s'.", riskAppetite)
	}

	return models.Insights{
		RiskProfile: dominant,
		Summary:     summary,
		Distribution: map[string]string{
			models.RiskLow:      format(lowPct),
			models.RiskModerate: format(moderatePct),
			models.RiskHigh:     format(highPct),
		},
	}
}
