package speech

import (
	"context"

	"github.com/rs/zerolog"
)

// LocalSynth is the built-in fallback voice. It produces no audio payload,
// which tells the client to render the utterance with its own voice engine.
type LocalSynth struct {
	logger zerolog.Logger
}

var _ Synthesizer = (*LocalSynth)(nil)

func NewLocalSynth(logger zerolog.Logger) *LocalSynth {
	return &LocalSynth{logger: logger.With().Str("component", "local_synth").Logger()}
}

func (s *LocalSynth) Speak(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug().Int("chars", len(text)).Msg("deferring utterance to client voice")
	return nil, nil
}

func (s *LocalSynth) Cancel() {}
