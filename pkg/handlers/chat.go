package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// ChatRequest for POST /api/chat and POST /api/chat/strategist.
type ChatRequest struct {
	Message string                  `json:"message"`
	History []models.HistoryMessage `json:"history,omitempty"`
}

// ChatResponse wraps the counselor's (or strategist's) reply.
type ChatResponse struct {
	Response       string `json:"response"`
	FunctionCalled string `json:"functionCalled,omitempty"`
}

// ChatHandler handles the counselor and strategist conversation endpoints.
type ChatHandler struct {
	counselor  services.CounselorService
	strategist services.StrategistService
	logger     *zap.Logger
}

// NewChatHandler creates a new chat handler. The strategist may be nil when
// no strategist oracle is configured; its endpoint then returns 503.
func NewChatHandler(counselor services.CounselorService, strategist services.StrategistService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		counselor:  counselor,
		strategist: strategist,
		logger:     logger,
	}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/chat", authMiddleware.RequireAuth(h.Chat))
	mux.HandleFunc("POST /api/chat/strategist", authMiddleware.RequireAuth(h.StrategistChat))
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserUUIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.counselor.Chat(r.Context(), userID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			if err := ErrorResponse(w, http.StatusBadRequest, "missing_message", "Message is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Chat failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "chat_failed", "Failed to process message"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	data := ChatResponse{
		Response:       result.Response,
		FunctionCalled: result.FunctionCalled,
	}
	response := ApiResponse{Success: true, Data: data}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// StrategistChat handles POST /api/chat/strategist
func (h *ChatHandler) StrategistChat(w http.ResponseWriter, r *http.Request) {
	if h.strategist == nil {
		if err := ErrorResponse(w, http.StatusServiceUnavailable, "strategist_unavailable", "Strategist is not configured"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	userID, err := auth.RequireUserUUIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.strategist.Chat(r.Context(), userID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			if err := ErrorResponse(w, http.StatusBadRequest, "missing_message", "Message is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Strategist chat failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "chat_failed", "Failed to process message"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	data := ChatResponse{Response: result.Response}
	response := ApiResponse{Success: true, Data: data}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
