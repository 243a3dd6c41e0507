package ws

import "encoding/json"

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeHello        = "hello"
	TypeChatSend     = "chat_send"
	TypeListenStart  = "listen_start"
	TypeListenStop   = "listen_stop"
	TypeListenResult = "listen_result"
	TypeListenEnd    = "listen_end"
	TypeListenError  = "listen_error"
	TypeSetMuted     = "set_muted"
	TypePing         = "ping"

	// Server -> Client
	TypeChatMessage       = "chat_message"
	TypeChatState         = "chat_state"
	TypeSpeechAudio       = "speech_audio"
	TypeSpeechUnavailable = "speech_unavailable"
	TypeError             = "error"
	TypePong              = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// Client Messages (incoming)

// HelloPayload announces the browser's capabilities after connecting.
type HelloPayload struct {
	SpeechCaptureAvailable bool `json:"speech_capture_available"`
}

type ChatSendPayload struct {
	Text string `json:"text"`
}

// ListenResultPayload carries a transcript captured by the browser's
// speech recognition.
type ListenResultPayload struct {
	Transcript string `json:"transcript"`
}

type ListenErrorPayload struct {
	Code string `json:"code"`
}

type SetMutedPayload struct {
	Muted bool `json:"muted"`
}

// Server Messages (outgoing)

type ChatMessagePayload struct {
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// ChatStatePayload mirrors the assistant's observable state so the client
// can render typing, listening and mute indicators.
type ChatStatePayload struct {
	Loading   bool `json:"loading"`
	Listening bool `json:"listening"`
	Muted     bool `json:"muted"`
	Speaking  bool `json:"speaking"`
}

// SpeechAudioPayload delivers synthesized speech. AudioBase64 is empty when
// the client should fall back to its built-in voice for Text.
type SpeechAudioPayload struct {
	Text        string `json:"text"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

type SpeechUnavailablePayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
