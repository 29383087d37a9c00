package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-invest-hub/internal/config"
	handlerhttp "github.com/MKhiriev/go-invest-hub/internal/handler/http"
	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/server"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/internal/workers"
	"github.com/MKhiriev/go-invest-hub/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("invest-hub-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, *cfg, log)

	auditWriter := workers.NewAuditWriter(storages.TransactionLogRepository, 0, 0, log)
	workers.NewWorkers(auditWriter).Run()

	handler := handlerhttp.NewHandler(services, auditWriter, db, cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()

	// the server has stopped handling requests; flush pending audit records
	auditWriter.Close()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
