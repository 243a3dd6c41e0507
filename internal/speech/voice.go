package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// VoiceConfig holds connection details for the networked voice service. The
// bearer credential and voice ID always come from configuration.
type VoiceConfig struct {
	VoiceURL string
	VoiceKey string
	VoiceID  string
	Timeout  time.Duration
}

// VoiceClient implements Synthesizer against a hosted text-to-speech API.
// At most one synthesis request is in flight; a new Speak or a Cancel
// supersedes the previous one.
type VoiceClient struct {
	httpClient *http.Client
	config     VoiceConfig
	logger     zerolog.Logger
	synthURL   string

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewVoiceClient(cfg VoiceConfig, logger zerolog.Logger) *VoiceClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	base := strings.TrimSuffix(cfg.VoiceURL, "/")

	return &VoiceClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config:   cfg,
		logger:   logger.With().Str("component", "voice_client").Logger(),
		synthURL: base + "/synthesize",
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"`
}

// Speak requests synthesized audio for text and returns the raw payload.
func (c *VoiceClient) Speak(ctx context.Context, text string) ([]byte, error) {
	if c.config.VoiceURL == "" {
		return nil, fmt.Errorf("voice endpoint not configured")
	}

	reqCtx, cancel := c.arm(ctx)
	defer c.disarm(cancel)

	body, err := json.Marshal(synthesizeRequest{Text: text, VoiceID: c.config.VoiceID})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.synthURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.VoiceKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.VoiceKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("voice service returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read voice payload: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("voice service returned empty audio")
	}
	return audio, nil
}

// Cancel aborts the in-flight synthesis request, if any.
func (c *VoiceClient) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *VoiceClient) arm(ctx context.Context) (context.Context, context.CancelFunc) {
	reqCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()
	return reqCtx, cancel
}

func (c *VoiceClient) disarm(cancel context.CancelFunc) {
	c.mu.Lock()
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}
