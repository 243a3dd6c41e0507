package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/config"
	"github.com/bioedu-labs/biobuddy-platform/internal/logging"
)

// WSUpgrader handles WebSocket upgrades (configure CORS/security as needed).
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: implement proper origin checking for production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// RouteRegistrar mounts a feature's routes on the mux.
type RouteRegistrar interface {
	Register(mux *http.ServeMux)
}

// Handlers collects the feature endpoints wired into the server. Any entry
// can be nil while the corresponding feature is not initialized.
type Handlers struct {
	Guest       http.HandlerFunc // POST /v1/auth/guest
	Quiz        RouteRegistrar
	Leaderboard http.HandlerFunc // GET /v1/leaderboards/quiz
	AssistantWS http.HandlerFunc // GET /ws/assistant
}

// NewHTTPServer wires base routes (health, metrics) plus feature endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, rdb *redis.Client, handlers Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, pool, rdb); err != nil {
			reqLogger := logging.FromContext(ctx)
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if handlers.Guest != nil {
		mux.HandleFunc("/v1/auth/guest", handlers.Guest)
	}

	if handlers.Quiz != nil {
		handlers.Quiz.Register(mux)
	}

	if handlers.Leaderboard != nil {
		mux.HandleFunc("/v1/leaderboards/quiz", handlers.Leaderboard)
	}

	if handlers.AssistantWS != nil {
		mux.HandleFunc("/ws/assistant", handlers.AssistantWS)
	} else {
		mux.HandleFunc("/ws/assistant", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "WebSocket handler not yet integrated", http.StatusNotImplemented)
		})
	}

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, rdb *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}
