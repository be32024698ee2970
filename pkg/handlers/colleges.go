package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/apperrors"
	"github.com/waypoint-hq/waypoint-engine/pkg/auth"
	"github.com/waypoint-hq/waypoint-engine/pkg/cache"
	"github.com/waypoint-hq/waypoint-engine/pkg/models"
	"github.com/waypoint-hq/waypoint-engine/pkg/services"
)

// AddCollegeRequest for POST /api/colleges.
type AddCollegeRequest struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// CollegeHandler handles the college list and catalog research endpoints.
type CollegeHandler struct {
	sync        services.SyncService
	research    services.ResearchService
	cache       cache.Cache
	researchTTL time.Duration
	logger      *zap.Logger
}

// NewCollegeHandler creates a new college handler.
func NewCollegeHandler(
	sync services.SyncService,
	research services.ResearchService,
	responseCache cache.Cache,
	researchTTL time.Duration,
	logger *zap.Logger,
) *CollegeHandler {
	return &CollegeHandler{
		sync:        sync,
		research:    research,
		cache:       responseCache,
		researchTTL: researchTTL,
		logger:      logger,
	}
}

// RegisterRoutes registers the college handler's routes on the given mux.
func (h *CollegeHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/colleges", authMiddleware.RequireAuth(h.AddCollege))
	mux.HandleFunc("GET /api/colleges/research", authMiddleware.RequireAuth(h.Research))
}

// AddCollege handles POST /api/colleges
func (h *CollegeHandler) AddCollege(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserUUIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AddCollegeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	collegeType := models.CollegeType(req.Type)
	if req.Type == "" {
		collegeType = models.CollegeTypeTarget
	}
	if !models.IsValidCollegeType(collegeType) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_type", "Type must be Reach, Target, or Safety"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.sync.AddCollegeForUser(r.Context(), userID, req.Name, collegeType)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			if err := ErrorResponse(w, http.StatusBadRequest, "missing_name", "College name is required"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to add college",
			zap.String("user_id", userID.String()),
			zap.String("college", req.Name),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "add_failed", "Failed to add college"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := ApiResponse{Success: true, Data: result}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Research handles GET /api/colleges/research?name=
// Responses are memoized so repeated lookups for the same college skip the
// oracle entirely.
func (h *CollegeHandler) Research(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_name", "Query parameter 'name' is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	key := cache.ResearchKey(name)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		response := ApiResponse{Success: true, Data: json.RawMessage(cached)}
		if err := WriteJSON(w, http.StatusOK, response); err != nil {
			h.logger.Error("Failed to write response", zap.Error(err))
		}
		return
	}

	entry, err := h.research.ResolveCollege(r.Context(), name, false)
	if err != nil {
		h.logger.Error("College research failed",
			zap.String("college", name),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "research_failed", "Failed to research college"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("Failed to marshal catalog entry", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to encode catalog entry"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	h.cache.Set(r.Context(), key, string(payload), h.researchTTL)

	response := ApiResponse{Success: true, Data: json.RawMessage(payload)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
