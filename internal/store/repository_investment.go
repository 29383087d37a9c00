package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

// investmentRepository is the PostgreSQL-backed implementation of
// [InvestmentRepository].
type investmentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewInvestmentRepository constructs an [InvestmentRepository] backed by the
// provided database connection and logger.
func NewInvestmentRepository(db *DB, logger *logger.Logger) InvestmentRepository {
	logger.Debug().Msg("creating investment repository")
	return &investmentRepository{
		db:     db,
		logger: logger,
	}
}

// maxInvestAttempts bounds how many times the invest transaction is retried
// after a retryable failure (deadlock, serialization abort, connection loss).
const maxInvestAttempts = 3

// CreateInvestment records the investment and debits the wallet in one
// transaction. The wallet row is locked with SELECT ... FOR UPDATE before the
// balance is compared against the amount, so two concurrent investments by
// the same user cannot both pass the check and overdraw the wallet.
//
// Error handling:
//   - Wallet row missing ([sql.ErrNoRows] on the lock) → [ErrWalletNotFound].
//   - Locked balance below the amount → [ErrInsufficientBalance].
//   - Any step failing rolls the whole transaction back; failures the
//     classifier reports as [Retryable] restart the transaction, up to
//     [maxInvestAttempts] attempts.
func (r *investmentRepository) CreateInvestment(ctx context.Context, investment models.Investment) (models.Investment, error) {
	log := logger.FromContext(ctx)

	var created models.Investment
	var err error
	for attempt := 1; attempt <= maxInvestAttempts; attempt++ {
		created, err = r.createInvestmentTx(ctx, investment)
		if err == nil {
			return created, nil
		}
		if r.db.errorClassificator.Classify(err) != Retryable {
			return models.Investment{}, err
		}

		log.Warn().
			Str("func", "*investmentRepository.CreateInvestment").
			Int64("user_id", investment.UserID).
			Int("attempt", attempt).
			Msg("retryable transaction failure, restarting invest transaction")
	}

	return models.Investment{}, err
}

// createInvestmentTx runs one attempt of the invest unit of work.
func (r *investmentRepository) createInvestmentTx(ctx context.Context, investment models.Investment) (models.Investment, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*investmentRepository.createInvestmentTx").Msg("failed to begin transaction")
		return models.Investment{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	if err := tx.QueryRowContext(ctx, lockWalletBalance, investment.UserID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Investment{}, ErrWalletNotFound
		}

		log.Err(err).Str("func", "*investmentRepository.createInvestmentTx").Int64("user_id", investment.UserID).Msg("failed to lock wallet row")
		return models.Investment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if balance.LessThan(investment.Amount) {
		return models.Investment{}, ErrInsufficientBalance
	}

	row := tx.QueryRowContext(ctx, createInvestment,
		investment.UserID, investment.ProductID, investment.Amount,
		investment.ExpectedReturn, investment.MaturityDate, investment.Status,
	)
	if err := row.Scan(&investment.InvestmentID, &investment.InvestedAt); err != nil {
		log.Err(err).Str("func", "*investmentRepository.createInvestmentTx").Int64("user_id", investment.UserID).Msg("failed to insert investment")
		return models.Investment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, decrementWalletBalance, investment.Amount, investment.UserID); err != nil {
		log.Err(err).Str("func", "*investmentRepository.createInvestmentTx").Int64("user_id", investment.UserID).Msg("failed to decrement wallet balance")
		return models.Investment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*investmentRepository.createInvestmentTx").Msg("failed to commit transaction")
		return models.Investment{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "*investmentRepository.createInvestmentTx").
		Int64("user_id", investment.UserID).
		Int64("product_id", investment.ProductID).
		Str("amount", investment.Amount.String()).
		Msg("investment recorded")

	return investment, nil
}

// GetPortfolio returns the user's investments joined with product details,
// newest first.
func (r *investmentRepository) GetPortfolio(ctx context.Context, userID int64) ([]models.PortfolioItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getPortfolio, userID)
	if err != nil {
		log.Err(err).Str("func", "*investmentRepository.GetPortfolio").Int64("user_id", userID).Msg("failed to query portfolio")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.PortfolioItem, 0)
	for rows.Next() {
		var item models.PortfolioItem
		if err := rows.Scan(&item.InvestmentID, &item.UserID, &item.ProductID, &item.Amount,
			&item.ExpectedReturn, &item.MaturityDate, &item.Status, &item.InvestedAt,
			&item.ProductName, &item.ProductType, &item.AnnualYield, &item.TenureMonths); err != nil {
			log.Err(err).Str("func", "*investmentRepository.GetPortfolio").Msg("failed to scan portfolio row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// GetActiveRiskSlices returns amount and product risk level for every active
// investment of the user. The insights derivation consumes these.
func (r *investmentRepository) GetActiveRiskSlices(ctx context.Context, userID int64) ([]models.RiskSlice, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getActiveRiskSlices, userID)
	if err != nil {
		log.Err(err).Str("func", "*investmentRepository.GetActiveRiskSlices").Int64("user_id", userID).Msg("failed to query risk slices")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	slices := make([]models.RiskSlice, 0)
	for rows.Next() {
		var slice models.RiskSlice
		if err := rows.Scan(&slice.Amount, &slice.RiskLevel); err != nil {
			log.Err(err).Str("func", "*investmentRepository.GetActiveRiskSlices").Msg("failed to scan risk slice")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		slices = append(slices, slice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return slices, nil
}
