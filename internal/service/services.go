package service

import (
	"github.com/MKhiriev/go-invest-hub/internal/config"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
)

type Services struct {
	AuthService       AuthService
	ProductService    ProductService
	InvestmentService InvestmentService
	LogService        LogService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, storages.WalletRepository, storages.PasswordResetRepository, cfg.App, logger),
		ProductService:    NewProductService(storages.ProductRepository, logger),
		InvestmentService: NewInvestmentService(storages.InvestmentRepository, storages.ProductRepository, storages.WalletRepository, storages.UserRepository, logger),
		LogService:        NewLogService(storages.TransactionLogRepository, logger),
	}
}
