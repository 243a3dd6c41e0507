package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRecognizerUnavailable(t *testing.T) {
	rec := NewChannelRecognizer()

	assert.False(t, rec.Available())
	_, err := rec.Start(context.Background())
	assert.ErrorIs(t, err, ErrRecognizerUnavailable)
	assert.False(t, rec.Push(RecognitionEvent{Kind: EventResult, Transcript: "dropped"}))
}

func TestChannelRecognizerCaptureLifecycle(t *testing.T) {
	rec := NewChannelRecognizer()
	rec.SetAvailable(true)

	events, err := rec.Start(context.Background())
	require.NoError(t, err)

	assert.True(t, rec.Push(RecognitionEvent{Kind: EventResult, Transcript: "what is mrna"}))
	assert.True(t, rec.Push(RecognitionEvent{Kind: EventEnd}))

	ev := <-events
	assert.Equal(t, EventResult, ev.Kind)
	assert.Equal(t, "what is mrna", ev.Transcript)

	ev = <-events
	assert.Equal(t, EventEnd, ev.Kind)

	_, open := <-events
	assert.False(t, open, "channel should close after end event")

	// capture is finished, further pushes are dropped
	assert.False(t, rec.Push(RecognitionEvent{Kind: EventResult, Transcript: "late"}))
}

func TestChannelRecognizerStopClosesCapture(t *testing.T) {
	rec := NewChannelRecognizer()
	rec.SetAvailable(true)

	events, err := rec.Start(context.Background())
	require.NoError(t, err)

	rec.Stop()

	_, open := <-events
	assert.False(t, open)
}
