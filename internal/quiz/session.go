// Package quiz drives one learner's pass over the multiple-choice question
// bank: answer state per question, cumulative score, and a completion summary.
package quiz

import (
	"errors"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
)

// ErrEmptyBank rejects construction over an empty question bank. An empty
// bank must fail loudly instead of producing a session that is instantly
// "complete".
var ErrEmptyBank = errors.New("question bank is empty")

const noSelection = -1

// Session is a single quiz attempt. It is a plain state machine with no
// internal locking; the owner serializes access.
type Session struct {
	bank         []content.QuizQuestion
	currentIndex int
	selected     int
	answered     bool
	correctCount int
	completed    bool
}

// Snapshot is the transport view of a session.
type Snapshot struct {
	CurrentIndex        int  `json:"current_index"`
	TotalQuestions      int  `json:"total_questions"`
	SelectedOptionIndex *int `json:"selected_option_index,omitempty"`
	Answered            bool `json:"answered"`
	CorrectCount        int  `json:"correct_count"`
	AnsweredCount       int  `json:"answered_count"`
	Completed           bool `json:"completed"`
}

// NewSession starts an attempt over bank, preserving its order.
func NewSession(bank []content.QuizQuestion) (*Session, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}
	questions := make([]content.QuizQuestion, len(bank))
	copy(questions, bank)
	return &Session{
		bank:     questions,
		selected: noSelection,
	}, nil
}

// Current returns the active question. Callers must check Completed first;
// after completion the last question remains current.
func (s *Session) Current() content.QuizQuestion {
	return s.bank[s.currentIndex]
}

// SelectOption records the learner's answer for the current question. The
// first answer is final: repeat calls and out-of-range indexes are no-ops.
// Returns whether the call changed state.
func (s *Session) SelectOption(index int) bool {
	if s.completed || s.answered {
		return false
	}
	if index < 0 || index >= len(s.Current().Options) {
		return false
	}

	s.selected = index
	s.answered = true
	if index == s.Current().CorrectOptionIndex {
		s.correctCount++
	}
	return true
}

// Advance moves to the next question, or completes the attempt on the last
// one. Unanswered questions cannot be skipped; the call is then a no-op.
// Returns whether the call changed state.
func (s *Session) Advance() bool {
	if s.completed || !s.answered {
		return false
	}

	if s.currentIndex == len(s.bank)-1 {
		s.completed = true
		return true
	}
	s.currentIndex++
	s.selected = noSelection
	s.answered = false
	return true
}

// Reset returns the session to its exact initial state: same bank, same
// order, deterministic replay.
func (s *Session) Reset() {
	s.currentIndex = 0
	s.selected = noSelection
	s.answered = false
	s.correctCount = 0
	s.completed = false
}

// Score reports correct answers over questions actually submitted. The
// denominator excludes the current question until it is answered.
func (s *Session) Score() (correct, answered int) {
	answered = s.currentIndex
	if s.answered || s.completed {
		answered++
	}
	return s.correctCount, answered
}

// Total returns the bank size.
func (s *Session) Total() int {
	return len(s.bank)
}

// Completed reports whether the attempt has advanced past the last question.
func (s *Session) Completed() bool {
	return s.completed
}

// Snapshot captures the session for transport.
func (s *Session) Snapshot() Snapshot {
	correct, answeredCount := s.Score()
	snap := Snapshot{
		CurrentIndex:   s.currentIndex,
		TotalQuestions: len(s.bank),
		Answered:       s.answered,
		CorrectCount:   correct,
		AnsweredCount:  answeredCount,
		Completed:      s.completed,
	}
	if s.selected != noSelection {
		selected := s.selected
		snap.SelectedOptionIndex = &selected
	}
	return snap
}
