package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/auth"
	httperrors "github.com/bioedu-labs/biobuddy-platform/pkg/http/errors"
)

// HTTPHandler exposes the quiz attempt lifecycle over REST.
type HTTPHandler struct {
	service *Service
	tokens  *auth.Manager
	logger  zerolog.Logger
}

func NewHTTPHandler(service *Service, tokens *auth.Manager, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		tokens:  tokens,
		logger:  logger.With().Str("component", "quiz_handler").Logger(),
	}
}

// Register mounts the quiz routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/quiz/attempts", h.handleAttempts)
	mux.HandleFunc("/v1/quiz/attempts/current", h.handleCurrent)
	mux.HandleFunc("/v1/quiz/attempts/current/select", h.handleSelect)
	mux.HandleFunc("/v1/quiz/attempts/current/advance", h.handleAdvance)
	mux.HandleFunc("/v1/quiz/attempts/current/reset", h.handleReset)
	mux.HandleFunc("/v1/quiz/history", h.handleHistory)
}

// handleAttempts starts a fresh attempt.
// POST /v1/quiz/attempts
func (h *HTTPHandler) handleAttempts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	view, err := h.service.Start(claims.LearnerID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to start attempt")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeAttemptStart, "failed to start attempt")
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// handleCurrent returns the in-progress attempt.
// GET /v1/quiz/attempts/current
func (h *HTTPHandler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	view, err := h.service.Current(claims.LearnerID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type selectRequest struct {
	OptionIndex int `json:"option_index"`
}

// handleSelect records an answer. Ignored inputs (already answered,
// out-of-range index) return the unchanged state, not an error.
// POST /v1/quiz/attempts/current/select
func (h *HTTPHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	view, err := h.service.SelectOption(claims.LearnerID, req.OptionIndex)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleAdvance moves to the next question or completes the attempt.
// POST /v1/quiz/attempts/current/advance
func (h *HTTPHandler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	view, err := h.service.Advance(r.Context(), claims.LearnerID, claims.DisplayName)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleReset restarts the attempt from the first question.
// POST /v1/quiz/attempts/current/reset
func (h *HTTPHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	view, err := h.service.Reset(claims.LearnerID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleHistory lists the learner's stored attempts, newest first.
// GET /v1/quiz/history?limit=N
func (h *HTTPHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}
	claims := auth.RequireClaims(w, r, h.tokens)
	if claims == nil {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "limit must be a positive integer", "limit")
			return
		}
		limit = parsed
	}

	attempts, err := h.service.History(r.Context(), claims.LearnerID, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load attempt history")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeInternalError, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoAttempt) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeAttemptNotFound, "no active attempt; start one first")
		return
	}
	h.logger.Error().Err(err).Msg("quiz service error")
	httperrors.RespondInternalError(w, "quiz service error")
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
