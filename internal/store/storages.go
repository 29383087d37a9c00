package store

import "github.com/MKhiriev/go-invest-hub/internal/logger"

// Storages aggregates every repository backed by the shared database
// connection. It is the single dependency handed to the service layer.
type Storages struct {
	UserRepository           UserRepository
	WalletRepository         WalletRepository
	ProductRepository        ProductRepository
	InvestmentRepository     InvestmentRepository
	PasswordResetRepository  PasswordResetRepository
	TransactionLogRepository TransactionLogRepository

	DB *DB
}

// NewStorages wires all repositories to the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:           NewUserRepository(db, logger),
		WalletRepository:         NewWalletRepository(db, logger),
		ProductRepository:        NewProductRepository(db, logger),
		InvestmentRepository:     NewInvestmentRepository(db, logger),
		PasswordResetRepository:  NewPasswordResetRepository(db, logger),
		TransactionLogRepository: NewTransactionLogRepository(db, logger),
		DB:                       db,
	}
}
