package content

import (
	"fmt"
	"strings"
)

// ValidateQuestionBank checks the static bank invariants. A violation means
// the binary shipped with broken content, so callers should refuse to start.
func ValidateQuestionBank(bank []QuizQuestion) error {
	if len(bank) == 0 {
		return fmt.Errorf("question bank is empty")
	}

	seen := make(map[int]struct{}, len(bank))
	for i, q := range bank {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id %d", i, q.ID)
		}
		seen[q.ID] = struct{}{}

		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("question %d: empty prompt", q.ID)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: need at least 2 options, got %d", q.ID, len(q.Options))
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			return fmt.Errorf("question %d: correct option index %d out of range [0,%d)", q.ID, q.CorrectOptionIndex, len(q.Options))
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("question %d: option %d is empty", q.ID, j)
			}
		}
	}
	return nil
}

// Validate checks response table invariants: unique case-normalized keywords,
// at least one candidate reply per topic, no empty strings anywhere.
func (t ResponseTable) Validate() error {
	if len(t.Topics) == 0 {
		return fmt.Errorf("response table has no topics")
	}
	if strings.TrimSpace(t.GeneralAnswer) == "" {
		return fmt.Errorf("response table general answer is empty")
	}
	if strings.TrimSpace(t.Fallback) == "" {
		return fmt.Errorf("response table fallback is empty")
	}

	seen := make(map[string]struct{}, len(t.Topics))
	for _, topic := range t.Topics {
		key := strings.ToLower(strings.TrimSpace(topic.Keyword))
		if key == "" {
			return fmt.Errorf("response table has an empty keyword")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate response keyword %q", key)
		}
		seen[key] = struct{}{}

		if len(topic.Responses) == 0 {
			return fmt.Errorf("keyword %q has no candidate responses", key)
		}
		for i, resp := range topic.Responses {
			if strings.TrimSpace(resp) == "" {
				return fmt.Errorf("keyword %q: response %d is empty", key, i)
			}
		}
	}
	return nil
}
