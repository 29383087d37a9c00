package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/models"
)

// passwordResetRepository is the PostgreSQL-backed implementation of
// [PasswordResetRepository].
type passwordResetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasswordResetRepository constructs a [PasswordResetRepository] backed by
// the provided database connection and logger.
func NewPasswordResetRepository(db *DB, logger *logger.Logger) PasswordResetRepository {
	logger.Debug().Msg("creating password reset repository")
	return &passwordResetRepository{
		db:     db,
		logger: logger,
	}
}

// CreateReset persists a new reset code. Old codes for the same email are
// left in place; FindLatestReset only ever considers the newest one.
func (r *passwordResetRepository) CreateReset(ctx context.Context, reset models.PasswordReset) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, createPasswordReset, reset.ID, reset.UserID, reset.Email, reset.OTP, reset.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.CreateReset").Int64("user_id", reset.UserID).Msg("failed to insert password reset")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// FindLatestReset returns the newest reset row matching email and code,
// whether or not it has been used or expired. The service inspects Used and
// ExpiresAt to produce the right error.
//
// Returns [ErrResetNotFound] when no row matches at all.
func (r *passwordResetRepository) FindLatestReset(ctx context.Context, email, otp string) (models.PasswordReset, error) {
	log := logger.FromContext(ctx)

	var reset models.PasswordReset
	row := r.db.QueryRowContext(ctx, findLatestPasswordReset, email, otp)

	if err := row.Scan(&reset.ID, &reset.UserID, &reset.Email, &reset.OTP, &reset.ExpiresAt, &reset.Used, &reset.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordReset{}, ErrResetNotFound
		}

		log.Err(err).Str("func", "*passwordResetRepository.FindLatestReset").Msg("failed to scan password reset")
		return models.PasswordReset{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return reset, nil
}

// MarkResetUsed flips the used flag on a reset row. The WHERE clause requires
// used = FALSE, so a second confirmation attempt with the same code affects
// zero rows and returns [ErrResetNotFound].
func (r *passwordResetRepository) MarkResetUsed(ctx context.Context, resetID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markPasswordResetUsed, resetID)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.MarkResetUsed").Str("reset_id", resetID).Msg("failed to mark reset used")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrResetNotFound
	}

	return nil
}
