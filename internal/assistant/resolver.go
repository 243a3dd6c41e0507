package assistant

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
)

// Responder produces the assistant's reply for free-text learner input.
type Responder interface {
	Respond(ctx context.Context, input string) (string, error)
}

// Broader trigger phrases answered with the general explanation when no
// topic keyword matches.
var generalTriggers = []string{"protein synthesis", "central dogma"}

// TableResolver answers from a static keyword table. Topic keywords are
// scanned in declared order and matched as substrings of the lower-cased
// input; the winning topic's candidate is picked at random. It never fails
// and always returns a non-empty reply.
type TableResolver struct {
	table content.ResponseTable
	pick  func(n int) int
}

var _ Responder = (*TableResolver)(nil)

// ResolverOption customizes a TableResolver.
type ResolverOption func(*TableResolver)

// WithPick injects the candidate selector, used by tests to force a
// deterministic choice.
func WithPick(pick func(n int) int) ResolverOption {
	return func(r *TableResolver) {
		r.pick = pick
	}
}

func NewTableResolver(table content.ResponseTable, opts ...ResolverOption) *TableResolver {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var mu sync.Mutex

	r := &TableResolver{
		table: table,
		pick: func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return rng.Intn(n)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond maps input to a canned reply. Normalization is lower-casing only.
func (r *TableResolver) Respond(_ context.Context, input string) (string, error) {
	normalized := strings.ToLower(input)

	for _, topic := range r.table.Topics {
		if strings.Contains(normalized, topic.Keyword) {
			return topic.Responses[r.pick(len(topic.Responses))], nil
		}
	}

	for _, trigger := range generalTriggers {
		if strings.Contains(normalized, trigger) {
			return r.table.GeneralAnswer, nil
		}
	}

	return r.table.Fallback, nil
}
