package http

import (
	"context"

	"github.com/MKhiriev/go-invest-hub/internal/config"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/models"
)

// Auditor receives one finished-request record per handled request.
// Implementations must not block the caller; see workers.AuditWriter.
type Auditor interface {
	Enqueue(record models.TransactionLog)
}

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	auditor  Auditor
	pinger   Pinger

	appCfg config.App
	logger *logger.Logger
}

func NewHandler(services *service.Services, auditor Auditor, pinger Pinger, appCfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		auditor:  auditor,
		pinger:   pinger,
		appCfg:   appCfg,
		logger:   logger,
	}
}
