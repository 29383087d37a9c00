package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
)

// logService exposes the per-request audit trail to its owner.
// Writing audit rows is not a service concern; the audit worker owns that.
type logService struct {
	logRepository store.TransactionLogRepository
	logger        *logger.Logger
}

// NewLogService constructs a LogService wired to the given repository.
func NewLogService(logRepository store.TransactionLogRepository, logger *logger.Logger) LogService {
	return &logService{
		logRepository: logRepository,
		logger:        logger,
	}
}

// LogsForUser returns the user's audit trail, newest first.
func (s *logService) LogsForUser(ctx context.Context, userID int64) ([]models.TransactionLog, error) {
	entries, err := s.logRepository.GetLogsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("transaction log lookup ended with error: %w", err)
	}

	return entries, nil
}
