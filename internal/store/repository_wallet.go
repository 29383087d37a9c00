package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/shopspring/decimal"
)

// walletRepository is the PostgreSQL-backed implementation of
// [WalletRepository]. It executes all balance reads and mutations against
// the "user_wallets" table.
//
// Deposits use an INSERT ... ON CONFLICT upsert so that the first deposit of
// a user without a wallet creates the row and later deposits increment it,
// in a single atomic statement.
type walletRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewWalletRepository constructs a [WalletRepository] backed by the provided
// database connection and logger.
func NewWalletRepository(db *DB, logger *logger.Logger) WalletRepository {
	logger.Debug().Msg("creating wallet repository")
	return &walletRepository{
		db:     db,
		logger: logger,
	}
}

// GetBalance returns the wallet balance of the given user.
//
// Returns [ErrWalletNotFound] when the user has no wallet row yet; callers
// decide whether that means zero (balance display) or an error.
func (r *walletRepository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	var balance decimal.Decimal
	row := r.db.QueryRowContext(ctx, getWalletBalance, userID)

	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrWalletNotFound
		}

		log.Err(err).Str("func", "*walletRepository.GetBalance").Int64("user_id", userID).Msg("failed to scan wallet balance")
		return decimal.Zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return balance, nil
}

// CreateWallet seeds a wallet row with the given opening balance.
//
// The INSERT carries ON CONFLICT DO NOTHING so a repeated signup attempt for
// an existing user can never double-credit the initial balance.
func (r *walletRepository) CreateWallet(ctx context.Context, userID int64, balance decimal.Decimal) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createWallet, userID, balance); err != nil {
		log.Err(err).Str("func", "*walletRepository.CreateWallet").Int64("user_id", userID).Msg("failed to create wallet")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Deposit adds amount to the user's balance, creating the wallet row when it
// does not exist yet, and returns the resulting balance.
func (r *walletRepository) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	var newBalance decimal.Decimal
	row := r.db.QueryRowContext(ctx, depositIntoWallet, userID, amount)

	if err := row.Scan(&newBalance); err != nil {
		log.Err(err).Str("func", "*walletRepository.Deposit").Int64("user_id", userID).Msg("failed to deposit into wallet")
		return decimal.Zero, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "*walletRepository.Deposit").
		Int64("user_id", userID).
		Str("amount", amount.String()).
		Str("new_balance", newBalance.String()).
		Msg("deposit applied")

	return newBalance, nil
}
