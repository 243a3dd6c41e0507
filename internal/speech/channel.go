package speech

import (
	"context"
	"sync"
)

// ChannelRecognizer proxies a speech input capability that lives on the other
// end of a connection: the transport announces availability and pushes the
// provider's result/end/error callbacks as events. It implements Recognizer
// for sessions that cannot tell a remote microphone from a local one.
type ChannelRecognizer struct {
	mu        sync.Mutex
	available bool
	events    chan RecognitionEvent
}

var _ Recognizer = (*ChannelRecognizer)(nil)

func NewChannelRecognizer() *ChannelRecognizer {
	return &ChannelRecognizer{}
}

// SetAvailable records whether the remote end holds a speech input capability.
func (r *ChannelRecognizer) SetAvailable(ok bool) {
	r.mu.Lock()
	r.available = ok
	r.mu.Unlock()
}

func (r *ChannelRecognizer) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.available
}

// Start opens a capture. The returned channel closes when capture ends.
func (r *ChannelRecognizer) Start(ctx context.Context) (<-chan RecognitionEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.available {
		return nil, ErrRecognizerUnavailable
	}
	if r.events != nil {
		close(r.events)
	}
	r.events = make(chan RecognitionEvent, 8)
	return r.events, nil
}

// Stop terminates the active capture, if any.
func (r *ChannelRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events != nil {
		close(r.events)
		r.events = nil
	}
}

// Push forwards a provider callback into the active capture. Events arriving
// with no capture open are dropped; end and error events close the capture.
// Returns false when the event was dropped.
func (r *ChannelRecognizer) Push(ev RecognitionEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.events == nil {
		return false
	}

	select {
	case r.events <- ev:
	default:
		return false
	}

	if ev.Kind == EventEnd || ev.Kind == EventError {
		close(r.events)
		r.events = nil
	}
	return true
}
