package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
	"github.com/bioedu-labs/biobuddy-platform/internal/db/repository"
	"github.com/bioedu-labs/biobuddy-platform/internal/leaderboard"
)

// ErrNoAttempt is returned when a learner interacts with a quiz attempt
// that was never started.
var ErrNoAttempt = errors.New("no active attempt")

type attemptStore interface {
	Insert(ctx context.Context, attempt repository.Attempt) error
	ListByLearner(ctx context.Context, learnerID uuid.UUID, limit int) ([]repository.Attempt, error)
}

type scoreRecorder interface {
	Record(ctx context.Context, req leaderboard.RecordRequest) error
}

// attempt pairs a session with its bookkeeping: when it started and
// whether the finished pass has already been written out.
type attempt struct {
	session   *Session
	startedAt time.Time
	persisted bool
}

// Service tracks at most one active quiz attempt per learner and persists
// finished passes.
type Service struct {
	mu       sync.Mutex
	attempts map[uuid.UUID]*attempt

	bank     []content.QuizQuestion
	store    attemptStore
	recorder scoreRecorder
	now      func() time.Time
	logger   zerolog.Logger
}

// ServiceConfig wires the quiz service's collaborators. Store and Recorder
// may be nil; finished attempts are then simply not persisted.
type ServiceConfig struct {
	Bank     []content.QuizQuestion
	Store    attemptStore
	Recorder scoreRecorder
	Clock    func() time.Time
	Logger   zerolog.Logger
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if err := content.ValidateQuestionBank(cfg.Bank); err != nil {
		return nil, err
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		attempts: make(map[uuid.UUID]*attempt),
		bank:     cfg.Bank,
		store:    cfg.Store,
		recorder: cfg.Recorder,
		now:      now,
		logger:   cfg.Logger.With().Str("component", "quiz_service").Logger(),
	}, nil
}

// QuestionView is the learner-facing shape of a question. The correct
// answer and explanation stay hidden until the question has been answered.
type QuestionView struct {
	ID                 int      `json:"id"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex *int     `json:"correct_option_index,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
}

// AttemptView is the full transport view of an attempt.
type AttemptView struct {
	Snapshot Snapshot      `json:"state"`
	Question *QuestionView `json:"question,omitempty"`
}

// Start begins a fresh attempt for the learner, replacing any attempt in
// progress.
func (s *Service) Start(learnerID uuid.UUID) (AttemptView, error) {
	session, err := NewSession(s.bank)
	if err != nil {
		return AttemptView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[learnerID] = &attempt{
		session:   session,
		startedAt: s.now(),
	}
	return s.viewLocked(s.attempts[learnerID]), nil
}

// Current returns the learner's attempt state.
func (s *Service) Current(learnerID uuid.UUID) (AttemptView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[learnerID]
	if !ok {
		return AttemptView{}, ErrNoAttempt
	}
	return s.viewLocked(a), nil
}

// SelectOption records the learner's answer for the current question.
// Repeat answers and out-of-range indexes leave the attempt unchanged.
func (s *Service) SelectOption(learnerID uuid.UUID, index int) (AttemptView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[learnerID]
	if !ok {
		return AttemptView{}, ErrNoAttempt
	}
	a.session.SelectOption(index)
	return s.viewLocked(a), nil
}

// Advance moves the attempt to the next question or, on the last one,
// completes it. Completion persists the result exactly once per pass.
func (s *Service) Advance(ctx context.Context, learnerID uuid.UUID, displayName string) (AttemptView, error) {
	s.mu.Lock()
	a, ok := s.attempts[learnerID]
	if !ok {
		s.mu.Unlock()
		return AttemptView{}, ErrNoAttempt
	}

	a.session.Advance()

	var finished *repository.Attempt
	if a.session.Completed() && !a.persisted {
		a.persisted = true
		correct, answered := a.session.Score()
		finished = &repository.Attempt{
			ID:              uuid.New(),
			LearnerID:       learnerID,
			CorrectCount:    correct,
			QuestionCount:   answered,
			DurationSeconds: int(s.now().Sub(a.startedAt).Seconds()),
			CompletedAt:     s.now(),
		}
	}
	view := s.viewLocked(a)
	s.mu.Unlock()

	if finished != nil {
		s.persist(ctx, *finished, displayName)
	}
	return view, nil
}

// Reset restarts the learner's attempt from the first question. A reset
// attempt that finishes again is persisted again as a new pass.
func (s *Service) Reset(learnerID uuid.UUID) (AttemptView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[learnerID]
	if !ok {
		return AttemptView{}, ErrNoAttempt
	}
	a.session.Reset()
	a.startedAt = s.now()
	a.persisted = false
	return s.viewLocked(a), nil
}

// History returns the learner's stored attempts, newest first.
func (s *Service) History(ctx context.Context, learnerID uuid.UUID, limit int) ([]repository.Attempt, error) {
	if s.store == nil {
		return []repository.Attempt{}, nil
	}
	return s.store.ListByLearner(ctx, learnerID, limit)
}

// persist writes a finished pass. Storage failures are logged and swallowed;
// the learner's in-memory attempt is already complete either way.
func (s *Service) persist(ctx context.Context, finished repository.Attempt, displayName string) {
	if s.store != nil {
		if err := s.store.Insert(ctx, finished); err != nil {
			s.logger.Error().Err(err).
				Str("learner_id", finished.LearnerID.String()).
				Msg("failed to persist quiz attempt")
		}
	}
	if s.recorder != nil {
		err := s.recorder.Record(ctx, leaderboard.RecordRequest{
			LearnerID:   finished.LearnerID,
			DisplayName: displayName,
			Score:       finished.CorrectCount,
			Total:       finished.QuestionCount,
		})
		if err != nil {
			s.logger.Error().Err(err).
				Str("learner_id", finished.LearnerID.String()).
				Msg("failed to record leaderboard score")
		}
	}
}

func (s *Service) viewLocked(a *attempt) AttemptView {
	view := AttemptView{Snapshot: a.session.Snapshot()}
	if !a.session.Completed() {
		q := a.session.Current()
		qv := QuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: append([]string(nil), q.Options...),
		}
		if view.Snapshot.Answered {
			correct := q.CorrectOptionIndex
			qv.CorrectOptionIndex = &correct
			qv.Explanation = q.Explanation
		}
		view.Question = &qv
	}
	return view
}

// BankSize reports how many questions an attempt covers.
func (s *Service) BankSize() int {
	return len(s.bank)
}
