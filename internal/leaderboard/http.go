package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/bioedu-labs/biobuddy-platform/pkg/http/errors"
)

// HTTPHandler serves the quiz leaderboard.
type HTTPHandler struct {
	service *Service
	total   int
	logger  zerolog.Logger
}

func NewHTTPHandler(service *Service, bankSize int, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		total:   bankSize,
		logger:  logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

type topResponse struct {
	Entries []Entry `json:"entries"`
}

// HandleTop responds to GET /v1/leaderboards/quiz.
func (h *HTTPHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "limit must be an integer", "limit")
			return
		}
		limit = parsed
	}

	entries, err := h.service.Top(r.Context(), limit, h.total)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard fetch failed")
		httperrors.RespondError(w, http.StatusServiceUnavailable, httperrors.ErrCodeLeaderboardFetch, "leaderboard unavailable")
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(topResponse{Entries: entries})
}
