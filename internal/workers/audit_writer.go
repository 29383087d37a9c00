// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
)

// Defaults applied by NewAuditWriter when the corresponding argument is zero.
const (
	// DefaultAuditBufferSize is the capacity of the in-memory record queue.
	DefaultAuditBufferSize = 256

	// DefaultAuditWriteTimeout bounds a single insert of an audit record.
	DefaultAuditWriteTimeout = 5 * time.Second
)

// AuditWriter is the background worker that persists one TransactionLog row
// per handled HTTP request.
//
// Records arrive through Enqueue, which never blocks the request path: a
// full queue falls back to a one-off goroutine instead of making the caller
// wait. Insert failures are logged and swallowed, so auditing can never fail
// or delay a response.
type AuditWriter struct {
	repository store.TransactionLogRepository

	records chan models.TransactionLog
	done    chan struct{}

	writeTimeout time.Duration
	closeOnce    sync.Once

	logger *logger.Logger
}

// NewAuditWriter constructs an audit writer draining into repository.
// Zero bufferSize and writeTimeout select the package defaults.
func NewAuditWriter(repository store.TransactionLogRepository, bufferSize int, writeTimeout time.Duration, logger *logger.Logger) *AuditWriter {
	if bufferSize <= 0 {
		bufferSize = DefaultAuditBufferSize
	}
	if writeTimeout <= 0 {
		writeTimeout = DefaultAuditWriteTimeout
	}

	logger.Debug().Int("buffer_size", bufferSize).Dur("write_timeout", writeTimeout).Msg("creating audit writer")
	return &AuditWriter{
		repository:   repository,
		records:      make(chan models.TransactionLog, bufferSize),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Enqueue hands a record to the writer without blocking. When the queue is
// full the record is written from its own goroutine so the HTTP response is
// never delayed by a slow database.
func (a *AuditWriter) Enqueue(record models.TransactionLog) {
	select {
	case a.records <- record:
	default:
		go a.write(record)
	}
}

// Run starts the drain loop in a background goroutine and returns
// immediately, matching the Worker contract used by Workers.Run.
func (a *AuditWriter) Run() {
	go func() {
		defer close(a.done)
		for record := range a.records {
			a.write(record)
		}
	}()
}

// Close stops accepting records, drains the queue, and waits for the drain
// loop to finish. It must be called only after the HTTP server has stopped
// handling requests.
func (a *AuditWriter) Close() {
	a.closeOnce.Do(func() {
		close(a.records)
	})
	<-a.done
}

func (a *AuditWriter) write(record models.TransactionLog) {
	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()

	if err := a.repository.InsertLog(ctx, record); err != nil {
		a.logger.Err(err).
			Str("endpoint", record.Endpoint).
			Str("method", record.Method).
			Int("status_code", record.StatusCode).
			Msg("audit record insert failed")
	}
}
