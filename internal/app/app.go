package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/assistant"
	"github.com/bioedu-labs/biobuddy-platform/internal/auth"
	"github.com/bioedu-labs/biobuddy-platform/internal/config"
	"github.com/bioedu-labs/biobuddy-platform/internal/content"
	"github.com/bioedu-labs/biobuddy-platform/internal/db/repository"
	"github.com/bioedu-labs/biobuddy-platform/internal/leaderboard"
	"github.com/bioedu-labs/biobuddy-platform/internal/logging"
	"github.com/bioedu-labs/biobuddy-platform/internal/prefs"
	"github.com/bioedu-labs/biobuddy-platform/internal/quiz"
	"github.com/bioedu-labs/biobuddy-platform/internal/server"
	"github.com/bioedu-labs/biobuddy-platform/internal/speech"
	ws "github.com/bioedu-labs/biobuddy-platform/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	hub      *ws.Hub
	sessions *assistant.Manager
}

// New bootstraps configs, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	// Shipped content is validated up front; a malformed bank or response
	// table is a build defect and must stop the process.
	bank := content.QuestionBank()
	if err := content.ValidateQuestionBank(bank); err != nil {
		return nil, fmt.Errorf("validate question bank: %w", err)
	}
	responses := content.AssistantResponses()
	if err := responses.Validate(); err != nil {
		return nil, fmt.Errorf("validate assistant responses: %w", err)
	}

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	tokenMgr := auth.NewManager(auth.TokenConfig{
		Secret: []byte(cfg.Security.JWTSecret),
		Issuer: cfg.Name,
	})
	authHandler := auth.NewHTTPHandler(tokenMgr, logger)

	attemptRepo := repository.NewAttemptRepository(pool)
	leaderboardSvc := leaderboard.NewService(redisClient, logger, leaderboard.ServiceOptions{
		TopN: cfg.Leaderboard.TopN,
	})

	quizSvc, err := quiz.NewService(quiz.ServiceConfig{
		Bank:     bank,
		Store:    attemptRepo,
		Recorder: leaderboardSvc,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build quiz service: %w", err)
	}
	quizHandler := quiz.NewHTTPHandler(quizSvc, tokenMgr, logger)
	lbHandler := leaderboard.NewHTTPHandler(leaderboardSvc, len(bank), logger)

	resolver := assistant.NewTableResolver(responses)
	prefStore := prefs.NewRedisStore(redisClient)
	hub := ws.NewHub(logger)
	sessions := assistant.NewManager(logger)

	assistantHandler := assistant.NewHandler(assistant.HandlerConfig{
		Manager:    sessions,
		Hub:        hub,
		Resolver:   resolver,
		Prefs:      prefStore,
		NewSynth:   synthFactory(cfg.Speech, logger),
		ReplyDelay: cfg.Assistant.ReplyDelay,
		Logger:     logger,
	})

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		Guest:       authHandler.HandleGuest,
		Quiz:        quizHandler,
		Leaderboard: lbHandler.HandleTop,
		AssistantWS: assistantHandler.WebSocketHandler(tokenMgr),
	})

	return &Application{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		redis:    redisClient,
		http:     apiServer,
		hub:      hub,
		sessions: sessions,
	}, nil
}

// synthFactory builds one speech output provider per assistant session.
// Without a configured voice service, sessions run on the local fallback,
// which defers playback to the client's built-in voice.
func synthFactory(cfg config.Speech, logger zerolog.Logger) func() speech.Synthesizer {
	return func() speech.Synthesizer {
		local := speech.NewLocalSynth(logger)
		if cfg.VoiceURL == "" {
			return local
		}
		voice := speech.NewVoiceClient(speech.VoiceConfig{
			VoiceURL: cfg.VoiceURL,
			VoiceKey: cfg.VoiceKey,
			VoiceID:  cfg.VoiceID,
			Timeout:  cfg.HTTPTimeout,
		}, logger)
		return speech.NewFallbackSynthesizer(voice, local, logger)
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.sessions.CloseAll()
	a.hub.CloseAll()

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
