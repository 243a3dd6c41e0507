package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/bioedu-labs/biobuddy-platform/pkg/http/errors"
)

const maxDisplayNameLen = 64

// HTTPHandler exposes guest session issuance.
type HTTPHandler struct {
	manager *Manager
	logger  zerolog.Logger
}

func NewHTTPHandler(manager *Manager, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		manager: manager,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

type guestRequest struct {
	DisplayName string `json:"display_name"`
}

type guestResponse struct {
	LearnerID   uuid.UUID `json:"learner_id"`
	DisplayName string    `json:"display_name"`
	Token       string    `json:"token"`
}

// HandleGuest mints a fresh learner identity and token.
// POST /v1/auth/guest
func (h *HTTPHandler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
		return
	}

	var req guestRequest
	if r.Body != nil {
		// Body is optional; an empty display name gets a default.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = "Anonymous learner"
	}
	if len(name) > maxDisplayNameLen {
		name = name[:maxDisplayNameLen]
	}

	learnerID := uuid.New()
	token, err := h.manager.Generate(learnerID, name)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate guest token")
		httperrors.RespondInternalError(w, "failed to create guest session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(guestResponse{
		LearnerID:   learnerID,
		DisplayName: name,
		Token:       token,
	})
}

// TokenFromRequest extracts a bearer token from the Authorization header,
// falling back to the "token" query parameter for WebSocket upgrades where
// browsers cannot set headers.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// RequireClaims validates the request's token and returns its claims,
// writing a 401 response and returning nil when validation fails.
func RequireClaims(w http.ResponseWriter, r *http.Request, manager *Manager) *Claims {
	token := TokenFromRequest(r)
	if token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "missing token")
		return nil
	}
	claims, err := manager.Validate(token)
	if err != nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "invalid or expired token")
		return nil
	}
	return claims
}
