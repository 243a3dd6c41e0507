// Package speech holds the assistant's speech input/output providers. Both
// sides are optional capabilities: a session must stay usable as a text-only
// interface when a provider is absent or failing.
package speech

import (
	"context"
	"errors"
)

// ErrRecognizerUnavailable reports that no speech input capability is
// present. Callers surface it as an availability signal, never a crash.
var ErrRecognizerUnavailable = errors.New("speech recognizer unavailable")

// Synthesizer renders text to audio. Speak blocks until the audio payload is
// ready or the utterance is cancelled. A nil payload with nil error means the
// client should fall back to its built-in voice.
type Synthesizer interface {
	Speak(ctx context.Context, text string) ([]byte, error)
	Cancel()
}

// EventKind discriminates recognizer callbacks.
type EventKind string

const (
	EventResult EventKind = "result"
	EventEnd    EventKind = "end"
	EventError  EventKind = "error"
)

// RecognitionEvent is one inbound speech-to-text callback. The event channel
// is the single entry point for recognizer state: a result carries the
// transcript, end and error both terminate the capture.
type RecognitionEvent struct {
	Kind       EventKind
	Transcript string
	Code       string
}

// Recognizer captures audio and emits recognition events. Start returns a
// channel that closes when capture ends for any reason.
type Recognizer interface {
	Available() bool
	Start(ctx context.Context) (<-chan RecognitionEvent, error)
	Stop()
}
