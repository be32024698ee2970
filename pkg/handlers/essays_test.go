package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestEssayHandler_Sync_Success(t *testing.T) {
	sync := &mockSyncService{syncCount: 4}
	handler := NewEssayHandler(sync, zap.NewNop())

	req := withAuthedUser(httptest.NewRequest(http.MethodPost, "/api/essays/sync", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Sync(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"records_created":4`) {
		t.Errorf("expected records_created in body, got %s", rec.Body.String())
	}
}

func TestEssayHandler_Sync_Failure(t *testing.T) {
	sync := &mockSyncService{syncErr: fmt.Errorf("connection refused")}
	handler := NewEssayHandler(sync, zap.NewNop())

	req := withAuthedUser(httptest.NewRequest(http.MethodPost, "/api/essays/sync", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Sync(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
