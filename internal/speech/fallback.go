package speech

import (
	"context"

	"github.com/rs/zerolog"
)

// FallbackSynthesizer tries the primary voice and degrades to the fallback on
// any failure, transparently to the caller.
type FallbackSynthesizer struct {
	primary  Synthesizer
	fallback Synthesizer
	logger   zerolog.Logger
}

var _ Synthesizer = (*FallbackSynthesizer)(nil)

// NewFallbackSynthesizer chains primary over fallback. Primary may be nil,
// in which case only the fallback is used.
func NewFallbackSynthesizer(primary, fallback Synthesizer, logger zerolog.Logger) *FallbackSynthesizer {
	return &FallbackSynthesizer{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "speech_output").Logger(),
	}
}

func (f *FallbackSynthesizer) Speak(ctx context.Context, text string) ([]byte, error) {
	if f.primary != nil {
		audio, err := f.primary.Speak(ctx, text)
		if err == nil {
			return audio, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn().Err(err).Msg("primary voice failed, using fallback")
	}
	return f.fallback.Speak(ctx, text)
}

func (f *FallbackSynthesizer) Cancel() {
	if f.primary != nil {
		f.primary.Cancel()
	}
	f.fallback.Cancel()
}
