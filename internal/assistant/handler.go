package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/prefs"
	"github.com/bioedu-labs/biobuddy-platform/internal/speech"
	httperrors "github.com/bioedu-labs/biobuddy-platform/pkg/http/errors"
	ws "github.com/bioedu-labs/biobuddy-platform/pkg/http/ws"
)

// Handler manages assistant WebSocket connections and routes chat messages.
type Handler struct {
	manager    *Manager
	hub        *ws.Hub
	resolver   Responder
	prefs      prefs.Store
	newSynth   func() speech.Synthesizer
	replyDelay time.Duration
	logger     zerolog.Logger
}

// HandlerConfig wires the WebSocket handler. NewSynth builds one speech
// output provider per session; providers hold per-utterance cancel state and
// must not be shared across sessions.
type HandlerConfig struct {
	Manager    *Manager
	Hub        *ws.Hub
	Resolver   Responder
	Prefs      prefs.Store
	NewSynth   func() speech.Synthesizer
	ReplyDelay time.Duration
	Logger     zerolog.Logger
}

// NewHandler creates an assistant WebSocket handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		manager:    cfg.Manager,
		hub:        cfg.Hub,
		resolver:   cfg.Resolver,
		prefs:      cfg.Prefs,
		newSynth:   cfg.NewSynth,
		replyDelay: cfg.ReplyDelay,
		logger:     cfg.Logger.With().Str("component", "assistant_handler").Logger(),
	}
}

// HandleConnection processes a new WebSocket connection. The token must be
// validated before calling this; learnerID comes from the JWT claims.
func (h *Handler) HandleConnection(conn *websocket.Conn, learnerID uuid.UUID) {
	wsConn := ws.NewConnection(conn, h.logger)
	h.hub.Register(learnerID, wsConn)
	go wsConn.WritePump()

	// The browser proxies its speech capture over this connection. Capability
	// is unknown until the hello message arrives.
	recognizer := speech.NewChannelRecognizer()

	session := NewSession(context.Background(), learnerID, SessionConfig{
		Resolver:   h.resolver,
		Synth:      h.newSynth(),
		Recognizer: recognizer,
		Prefs:      h.prefs,
		Sink:       &hubSink{hub: h.hub, learnerID: learnerID},
		ReplyDelay: h.replyDelay,
		Logger:     h.logger,
	})
	h.manager.Register(session)

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(context.Background(), session, recognizer, wsConn, msg)
	})

	// Cleanup on disconnect
	h.manager.Dispose(session.ID())
	h.hub.Unregister(learnerID, wsConn)
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(ctx context.Context, session *Session, recognizer *speech.ChannelRecognizer, conn *ws.Connection, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeHello:
		return h.handleHello(recognizer, msg.Payload)
	case ws.TypeChatSend:
		return h.handleChatSend(session, conn, msg.Payload)
	case ws.TypeListenStart:
		if !session.StartListening() {
			return sendUnavailable(conn, "speech capture is not available")
		}
		return nil
	case ws.TypeListenStop:
		session.StopListening()
		return nil
	case ws.TypeListenResult:
		return h.handleListenResult(recognizer, conn, msg.Payload)
	case ws.TypeListenEnd:
		recognizer.Push(speech.RecognitionEvent{Kind: speech.EventEnd})
		return nil
	case ws.TypeListenError:
		return h.handleListenError(recognizer, msg.Payload)
	case ws.TypeSetMuted:
		return h.handleSetMuted(ctx, session, conn, msg.Payload)
	case ws.TypePing:
		return conn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
	default:
		return sendError(conn, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *Handler) handleHello(recognizer *speech.ChannelRecognizer, payload json.RawMessage) error {
	var req ws.HelloPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		// An unreadable hello just leaves capture unavailable.
		return nil
	}
	recognizer.SetAvailable(req.SpeechCaptureAvailable)
	return nil
}

func (h *Handler) handleChatSend(session *Session, conn *ws.Connection, payload json.RawMessage) error {
	var req ws.ChatSendPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid chat_send payload")
	}
	session.SendMessage(req.Text)
	return nil
}

func (h *Handler) handleListenResult(recognizer *speech.ChannelRecognizer, conn *ws.Connection, payload json.RawMessage) error {
	var req ws.ListenResultPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid listen_result payload")
	}
	recognizer.Push(speech.RecognitionEvent{Kind: speech.EventResult, Transcript: req.Transcript})
	return nil
}

func (h *Handler) handleListenError(recognizer *speech.ChannelRecognizer, payload json.RawMessage) error {
	var req ws.ListenErrorPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		req.Code = "unknown"
	}
	recognizer.Push(speech.RecognitionEvent{Kind: speech.EventError, Code: req.Code})
	return nil
}

func (h *Handler) handleSetMuted(ctx context.Context, session *Session, conn *ws.Connection, payload json.RawMessage) error {
	var req ws.SetMutedPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid set_muted payload")
	}
	session.SetMuted(ctx, req.Muted)
	return nil
}

func sendError(conn *ws.Connection, code, message string) error {
	msg := ws.Message{Type: ws.TypeError}
	msg.Payload, _ = json.Marshal(ws.ErrorPayload{Code: code, Message: message})
	return conn.Send(msg)
}

func sendUnavailable(conn *ws.Connection, reason string) error {
	msg := ws.Message{Type: ws.TypeSpeechUnavailable}
	msg.Payload, _ = json.Marshal(ws.SpeechUnavailablePayload{Reason: reason})
	return conn.Send(msg)
}

// hubSink pushes session output to the learner's registered connection.
// Send failures are tolerated; a dropped connection tears the session down
// via ReadPump.
type hubSink struct {
	hub       *ws.Hub
	learnerID uuid.UUID
}

func (s *hubSink) MessageAppended(msg Message) {
	out := ws.Message{Type: ws.TypeChatMessage}
	out.Payload, _ = json.Marshal(ws.ChatMessagePayload{
		Text:      msg.Text,
		Sender:    string(msg.Sender),
		Timestamp: msg.Timestamp.Format(time.RFC3339),
	})
	_ = s.hub.Send(s.learnerID, out)
}

func (s *hubSink) StateChanged(st State) {
	out := ws.Message{Type: ws.TypeChatState}
	out.Payload, _ = json.Marshal(ws.ChatStatePayload{
		Loading:   st.Loading,
		Listening: st.Listening,
		Muted:     st.Muted,
		Speaking:  st.Speaking,
	})
	_ = s.hub.Send(s.learnerID, out)
}

func (s *hubSink) AudioReady(text string, audio []byte) {
	payload := ws.SpeechAudioPayload{Text: text}
	if len(audio) > 0 {
		payload.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
		payload.MimeType = "audio/mpeg"
	}
	out := ws.Message{Type: ws.TypeSpeechAudio}
	out.Payload, _ = json.Marshal(payload)
	_ = s.hub.Send(s.learnerID, out)
}
