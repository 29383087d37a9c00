package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerWithLogs(t *testing.T, logs service.LogService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{LogService: logs})
}

func TestLogs_ReturnsOwnTrail(t *testing.T) {
	userID := int64(7)
	logs := &mockLogService{
		logsForUserFn: func(_ context.Context, id int64) ([]models.TransactionLog, error) {
			assert.Equal(t, userID, id)
			return []models.TransactionLog{
				{LogID: 2, UserID: &userID, Endpoint: "/invest", Method: http.MethodPost, StatusCode: 201},
				{LogID: 1, UserID: &userID, Endpoint: "/products", Method: http.MethodGet, StatusCode: 200},
			}, nil
		},
	}

	h := newHandlerWithLogs(t, logs)
	req := authedRequest(http.MethodGet, "/logs", "")
	rec := httptest.NewRecorder()

	h.logs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.TransactionLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].LogID)
}

func TestLogs_NoIdentity(t *testing.T) {
	h := newHandlerWithLogs(t, &mockLogService{})

	req := httptest.NewRequest(http.MethodGet, "/logs", nil)
	rec := httptest.NewRecorder()

	h.logs(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogs_UnexpectedError(t *testing.T) {
	logs := &mockLogService{
		logsForUserFn: func(_ context.Context, _ int64) ([]models.TransactionLog, error) {
			return nil, errors.New("db connection lost")
		},
	}

	h := newHandlerWithLogs(t, logs)
	req := authedRequest(http.MethodGet, "/logs", "")
	rec := httptest.NewRecorder()

	h.logs(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
