package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/models"
)

// transactionLogRepository is the PostgreSQL-backed implementation of
// [TransactionLogRepository].
//
// InsertLog is called from the audit worker goroutine, not from a request
// handler, so it logs through the repository logger rather than a
// context-scoped one.
type transactionLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionLogRepository constructs a [TransactionLogRepository] backed
// by the provided database connection and logger.
func NewTransactionLogRepository(db *DB, logger *logger.Logger) TransactionLogRepository {
	logger.Debug().Msg("creating transaction log repository")
	return &transactionLogRepository{
		db:     db,
		logger: logger,
	}
}

// InsertLog appends one audit row. UserID, Email and ErrorMessage may be nil
// for unauthenticated or successful requests.
func (r *transactionLogRepository) InsertLog(ctx context.Context, entry models.TransactionLog) error {
	if _, err := r.db.ExecContext(ctx, insertTransactionLog,
		entry.UserID, entry.Email, entry.Endpoint, entry.Method, entry.StatusCode, entry.ErrorMessage); err != nil {
		r.logger.Err(err).Str("func", "*transactionLogRepository.InsertLog").Str("endpoint", entry.Endpoint).Msg("failed to insert transaction log")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetLogsByUser returns the audit trail of one user, newest first.
func (r *transactionLogRepository) GetLogsByUser(ctx context.Context, userID int64) ([]models.TransactionLog, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getTransactionLogsByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*transactionLogRepository.GetLogsByUser").Int64("user_id", userID).Msg("failed to query transaction logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.TransactionLog, 0)
	for rows.Next() {
		var entry models.TransactionLog
		if err := rows.Scan(&entry.LogID, &entry.UserID, &entry.Email, &entry.Endpoint,
			&entry.Method, &entry.StatusCode, &entry.ErrorMessage, &entry.CreatedAt); err != nil {
			log.Err(err).Str("func", "*transactionLogRepository.GetLogsByUser").Msg("failed to scan transaction log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
