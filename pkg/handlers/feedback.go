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

// FeedbackRequest for POST /api/feedback.
type FeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// FeedbackHandler handles feedback ticket intake.
type FeedbackHandler struct {
	feedback services.FeedbackService
	logger   *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedback services.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, logger: logger}
}

// RegisterRoutes registers the feedback handler's routes on the given mux.
func (h *FeedbackHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/feedback", authMiddleware.RequireAuth(h.Submit))
}

// Submit handles POST /api/feedback
// The ticket row is the source of truth; the outbound notification is
// fire-and-forget and never blocks the response.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserUUIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	claims, _ := auth.GetClaims(r.Context())
	email := ""
	if claims != nil {
		email = claims.Email
	}

	ticket := &models.Ticket{
		UserID:    &userID,
		UserEmail: email,
		Subject:   req.Subject,
		Message:   req.Message,
	}

	if err := h.feedback.Submit(r.Context(), ticket); err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			if err := ErrorResponse(w, http.StatusBadRequest, "missing_message", "Message is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to submit feedback",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "submit_failed", "Failed to submit feedback"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ApiResponse{Success: true, Data: map[string]string{"ticket_id": ticket.ID.String()}}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
