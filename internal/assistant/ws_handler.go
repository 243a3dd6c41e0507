package assistant

import (
	"net/http"

	"github.com/bioedu-labs/biobuddy-platform/internal/auth"
	"github.com/bioedu-labs/biobuddy-platform/internal/server"
	httperrors "github.com/bioedu-labs/biobuddy-platform/pkg/http/errors"
)

// WebSocketHandler returns the upgrade endpoint for assistant connections.
// Tokens arrive in the query string because browsers cannot set headers on
// WebSocket upgrades.
func (h *Handler) WebSocketHandler(tokens *auth.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Missing token")
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			h.logger.Warn().Err(err).Msg("WebSocket token validation failed")
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid token")
			return
		}

		conn, err := server.WSUpgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		h.HandleConnection(conn, claims.LearnerID)
	}
}
