package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
	"github.com/bioedu-labs/biobuddy-platform/internal/prefs"
	"github.com/bioedu-labs/biobuddy-platform/internal/speech"
)

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one immutable transcript entry. Timestamps are for display
// ordering only; the append order is authoritative.
type Message struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// State is a snapshot of the session's orthogonal flags.
type State struct {
	Loading   bool `json:"loading"`
	Listening bool `json:"listening"`
	Muted     bool `json:"muted"`
	Speaking  bool `json:"speaking"`
}

// Sink consumes the session's outbound effects. The WebSocket handler
// implements it to push transcript and state updates to the client.
// AudioReady fires for every rendered utterance; audio is nil when the
// provider defers playback to the client's built-in voice for text.
type Sink interface {
	MessageAppended(msg Message)
	StateChanged(st State)
	AudioReady(text string, audio []byte)
}

// NopSink discards all session output.
type NopSink struct{}

func (NopSink) MessageAppended(Message)   {}
func (NopSink) StateChanged(State)        {}
func (NopSink) AudioReady(string, []byte) {}

const defaultReplyDelay = 750 * time.Millisecond

// SessionConfig wires a session's collaborators. Resolver, Synth, Prefs and
// Sink are required; Recognizer may be nil when the client has no speech
// input capability.
type SessionConfig struct {
	Resolver   Responder
	Synth      speech.Synthesizer
	Recognizer speech.Recognizer
	Prefs      prefs.Store
	Sink       Sink

	// ReplyDelay is the minimum latency before a reply lands, so the
	// typing indicator reads as a real round trip. Zero means default;
	// negative disables the delay (tests).
	ReplyDelay time.Duration
	Clock      func() time.Time
	Logger     zerolog.Logger
}

// Session is one learner's conversation with the assistant. The transcript is
// append-only; all mutation happens under one mutex, and generation counters
// keep stale provider callbacks from touching state they no longer own.
type Session struct {
	id        uuid.UUID
	learnerID uuid.UUID
	logger    zerolog.Logger

	resolver   Responder
	synth      speech.Synthesizer
	recognizer speech.Recognizer
	prefs      prefs.Store
	sink       Sink
	replyDelay time.Duration
	clock      func() time.Time

	mu         sync.Mutex
	transcript []Message
	loading    bool
	listening  bool
	muted      bool
	speaking   bool
	closed     bool
	speakGen   uint64
	listenGen  uint64
}

// NewSession builds a session, restores the persisted mute flag, and appends
// the one-time greeting. The greeting is tied to the session object, so a
// client re-render cannot duplicate it.
func NewSession(ctx context.Context, learnerID uuid.UUID, cfg SessionConfig) *Session {
	replyDelay := cfg.ReplyDelay
	if replyDelay == 0 {
		replyDelay = defaultReplyDelay
	} else if replyDelay < 0 {
		replyDelay = 0
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	sink := cfg.Sink
	if sink == nil {
		sink = NopSink{}
	}

	id := uuid.New()
	s := &Session{
		id:         id,
		learnerID:  learnerID,
		logger:     cfg.Logger.With().Str("component", "assistant_session").Str("session_id", id.String()).Logger(),
		resolver:   cfg.Resolver,
		synth:      cfg.Synth,
		recognizer: cfg.Recognizer,
		prefs:      cfg.Prefs,
		sink:       sink,
		replyDelay: replyDelay,
		clock:      clock,
	}

	muted, err := cfg.Prefs.Muted(ctx, learnerID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("mute preference unreadable, defaulting to unmuted")
	}
	s.muted = muted

	if len(s.transcript) == 0 {
		greeting := Message{Text: content.Greeting, Sender: SenderAssistant, Timestamp: s.clock()}
		s.transcript = append(s.transcript, greeting)
		sink.MessageAppended(greeting)
	}
	sink.StateChanged(s.State())

	return s
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Transcript returns a copy of the message log in chronological order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// State returns a snapshot of the session flags.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Loading:   s.loading,
		Listening: s.listening,
		Muted:     s.muted,
		Speaking:  s.speaking,
	}
}

// SendMessage appends the learner's message and schedules the reply.
// Whitespace-only input is ignored. The user message is appended and emitted
// before this method returns; the assistant reply lands asynchronously.
func (s *Session) SendMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	msg := Message{Text: text, Sender: SenderUser, Timestamp: s.clock()}
	s.transcript = append(s.transcript, msg)
	s.loading = true
	s.mu.Unlock()

	s.sink.MessageAppended(msg)
	s.notifyState()

	go s.deliverReply(text)
}

func (s *Session) deliverReply(input string) {
	if s.replyDelay > 0 {
		time.Sleep(s.replyDelay)
	}

	reply, err := s.resolver.Respond(context.Background(), input)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.Error().Err(err).Msg("resolver failed")
		reply = content.Apology
	}

	s.mu.Lock()
	if s.closed {
		// Session was torn down while the reply was pending; drop it.
		s.mu.Unlock()
		return
	}
	msg := Message{Text: reply, Sender: SenderAssistant, Timestamp: s.clock()}
	s.transcript = append(s.transcript, msg)
	s.loading = false
	s.mu.Unlock()

	s.sink.MessageAppended(msg)
	s.notifyState()

	s.speak(reply)
}

// StartListening begins speech capture. Returns false when no speech input
// capability is present or capture could not start; that is an availability
// signal for the caller, not an error. Starting capture cancels any
// in-progress speech output.
func (s *Session) StartListening() bool {
	if s.recognizer == nil || !s.recognizer.Available() {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if s.listening {
		s.mu.Unlock()
		return true
	}
	s.speakGen++
	wasSpeaking := s.speaking
	s.speaking = false
	s.mu.Unlock()

	if wasSpeaking {
		s.synth.Cancel()
	}

	events, err := s.recognizer.Start(context.Background())
	if err != nil {
		s.logger.Debug().Err(err).Msg("speech capture unavailable")
		if wasSpeaking {
			s.notifyState()
		}
		return false
	}

	s.mu.Lock()
	s.listening = true
	s.listenGen++
	gen := s.listenGen
	s.mu.Unlock()
	s.notifyState()

	go s.consumeRecognition(events, gen)
	return true
}

// StopListening halts capture. The flag clears immediately, without waiting
// for the provider's stop acknowledgment.
func (s *Session) StopListening() {
	s.mu.Lock()
	if !s.listening {
		s.mu.Unlock()
		return
	}
	s.listening = false
	s.listenGen++
	s.mu.Unlock()

	s.recognizer.Stop()
	s.notifyState()
}

func (s *Session) consumeRecognition(events <-chan speech.RecognitionEvent, gen uint64) {
	for ev := range events {
		if !s.captureCurrent(gen) {
			return
		}
		s.handleRecognition(ev, gen)
	}
	s.clearListening(gen)
}

// handleRecognition is the single transition point for recognizer callbacks.
func (s *Session) handleRecognition(ev speech.RecognitionEvent, gen uint64) {
	switch ev.Kind {
	case speech.EventResult:
		s.clearListening(gen)
		s.SendMessage(ev.Transcript)
	case speech.EventError:
		s.logger.Warn().Str("code", ev.Code).Msg("speech recognition error")
		s.clearListening(gen)
	case speech.EventEnd:
		s.clearListening(gen)
	}
}

func (s *Session) captureCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.listenGen == gen
}

func (s *Session) clearListening(gen uint64) {
	s.mu.Lock()
	if s.closed || s.listenGen != gen || !s.listening {
		s.mu.Unlock()
		return
	}
	s.listening = false
	s.mu.Unlock()
	s.notifyState()
}

// SetMuted updates and persists the mute flag. Muting cancels any in-flight
// speech output in the same call, not just future ones.
func (s *Session) SetMuted(ctx context.Context, muted bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.muted = muted
	wasSpeaking := false
	if muted && s.speaking {
		s.speakGen++
		s.speaking = false
		wasSpeaking = true
	}
	s.mu.Unlock()

	if wasSpeaking {
		s.synth.Cancel()
	}

	if err := s.prefs.SetMuted(ctx, s.learnerID, muted); err != nil {
		s.logger.Warn().Err(err).Msg("persist mute preference failed")
	}
	s.notifyState()
}

// speak renders text through the speech output provider. At most one
// utterance is live at a time; a newer one supersedes, never queues behind,
// an unfinished one. Provider failures are swallowed.
func (s *Session) speak(text string) {
	s.mu.Lock()
	if s.closed || s.muted {
		s.mu.Unlock()
		return
	}
	s.speakGen++
	gen := s.speakGen
	wasSpeaking := s.speaking
	s.speaking = true
	s.mu.Unlock()

	if wasSpeaking {
		s.synth.Cancel()
	}
	s.notifyState()

	go func() {
		audio, err := s.synth.Speak(context.Background(), text)

		s.mu.Lock()
		current := !s.closed && s.speakGen == gen
		if current {
			s.speaking = false
		}
		s.mu.Unlock()

		if !current {
			// Superseded or torn down; the result is discarded.
			return
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("speech output failed")
		} else {
			// Nil audio is the provider deferring to the client's built-in
			// voice; the event still carries the text to speak.
			s.sink.AudioReady(text, audio)
		}
		s.notifyState()
	}()
}

// Close tears down the session and its provider handles. Pending callbacks
// become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.speakGen++
	s.listenGen++
	s.loading = false
	s.listening = false
	s.speaking = false
	s.mu.Unlock()

	if s.recognizer != nil {
		s.recognizer.Stop()
	}
	s.synth.Cancel()
}

func (s *Session) notifyState() {
	s.sink.StateChanged(s.State())
}
