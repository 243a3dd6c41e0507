package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"biobuddy-platform"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres    Postgres
	Redis       Redis
	Security    Security
	Assistant   Assistant
	Speech      Speech
	Leaderboard Leaderboard
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache + preference store configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for token signing.
type Security struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty"`
}

// Assistant groups conversational assistant behavior.
type Assistant struct {
	// ReplyDelay is the minimum latency before a canned reply is delivered,
	// so the widget's typing indicator reads as a real round trip.
	ReplyDelay time.Duration `env:"ASSISTANT_REPLY_DELAY" envDefault:"750ms"`
}

// Speech configures the networked text-to-speech service. When VoiceURL is
// empty the service runs with the built-in local fallback only.
type Speech struct {
	VoiceURL    string        `env:"SPEECH_VOICE_URL"`
	VoiceKey    string        `env:"SPEECH_VOICE_API_KEY"`
	VoiceID     string        `env:"SPEECH_VOICE_ID"`
	HTTPTimeout time.Duration `env:"SPEECH_HTTP_TIMEOUT" envDefault:"8s"`
}

// Leaderboard governs quiz score ranking behavior.
type Leaderboard struct {
	TopN int `env:"LEADERBOARD_TOP" envDefault:"25"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
