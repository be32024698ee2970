package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// SyncEssaysResponse for POST /api/essays/sync.
type SyncEssaysResponse struct {
	RecordsCreated int `json:"records_created"`
}

// EssayHandler handles essay sync endpoints.
type EssayHandler struct {
	sync   services.SyncService
	logger *zap.Logger
}

// NewEssayHandler creates a new essay handler.
func NewEssayHandler(sync services.SyncService, logger *zap.Logger) *EssayHandler {
	return &EssayHandler{sync: sync, logger: logger}
}

// RegisterRoutes registers the essay handler's routes on the given mux.
func (h *EssayHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/essays/sync", authMiddleware.RequireAuth(h.Sync))
}

// Sync handles POST /api/essays/sync
// Re-materializes essays and starter tasks for every college on the list.
// Safe to call repeatedly; existing records are never duplicated.
func (h *EssayHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserUUIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	created, err := h.sync.SyncAllForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Essay sync failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "sync_failed", "Failed to sync essays"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ApiResponse{Success: true, Data: SyncEssaysResponse{RecordsCreated: created}}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
