package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
	"github.com/bioedu-labs/biobuddy-platform/internal/db/repository"
	"github.com/bioedu-labs/biobuddy-platform/internal/leaderboard"
)

type stubStore struct {
	inserted  []repository.Attempt
	insertErr error
	listed    []repository.Attempt
}

func (s *stubStore) Insert(_ context.Context, a repository.Attempt) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, a)
	return nil
}

func (s *stubStore) ListByLearner(_ context.Context, _ uuid.UUID, _ int) ([]repository.Attempt, error) {
	return s.listed, nil
}

type stubRecorder struct {
	recorded []leaderboard.RecordRequest
}

func (s *stubRecorder) Record(_ context.Context, req leaderboard.RecordRequest) error {
	s.recorded = append(s.recorded, req)
	return nil
}

func newServiceFixture(t *testing.T) (*Service, *stubStore, *stubRecorder) {
	t.Helper()
	store := &stubStore{}
	recorder := &stubRecorder{}
	svc, err := NewService(ServiceConfig{
		Bank:     serviceTestBank(),
		Store:    store,
		Recorder: recorder,
		Clock:    func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return svc, store, recorder
}

func serviceTestBank() []content.QuizQuestion {
	return []content.QuizQuestion{
		{
			ID:                 1,
			Prompt:             "Where does transcription happen?",
			Options:            []string{"Cytoplasm", "Nucleus"},
			CorrectOptionIndex: 1,
			Explanation:        "Transcription happens in the nucleus.",
		},
		{
			ID:                 2,
			Prompt:             "What reads mRNA?",
			Options:            []string{"Ribosome", "Nucleolus"},
			CorrectOptionIndex: 0,
			Explanation:        "Ribosomes translate mRNA into protein.",
		},
	}
}

func completePass(t *testing.T, svc *Service, learnerID uuid.UUID, picks []int) AttemptView {
	t.Helper()
	var view AttemptView
	var err error
	for _, pick := range picks {
		_, err = svc.SelectOption(learnerID, pick)
		require.NoError(t, err)
		view, err = svc.Advance(context.Background(), learnerID, "Ada")
		require.NoError(t, err)
	}
	return view
}

func TestService_RejectsInvalidBank(t *testing.T) {
	_, err := NewService(ServiceConfig{Bank: nil, Logger: zerolog.Nop()})
	assert.Error(t, err)
}

func TestService_StartExposesQuestionWithoutAnswer(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	learnerID := uuid.New()

	view, err := svc.Start(learnerID)
	require.NoError(t, err)

	require.NotNil(t, view.Question)
	assert.Equal(t, 1, view.Question.ID)
	assert.Nil(t, view.Question.CorrectOptionIndex, "answer must stay hidden before answering")
	assert.Empty(t, view.Question.Explanation)
}

func TestService_SelectRevealsAnswer(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)

	view, err := svc.SelectOption(learnerID, 1)
	require.NoError(t, err)

	require.NotNil(t, view.Question.CorrectOptionIndex)
	assert.Equal(t, 1, *view.Question.CorrectOptionIndex)
	assert.Equal(t, "Transcription happens in the nucleus.", view.Question.Explanation)
}

func TestService_IgnoredInputsReturnUnchangedState(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)

	// Advancing an unanswered question changes nothing.
	view, err := svc.Advance(context.Background(), learnerID, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Snapshot.CurrentIndex)
	assert.False(t, view.Snapshot.Answered)

	// The first answer is final.
	_, err = svc.SelectOption(learnerID, 1)
	require.NoError(t, err)
	view, err = svc.SelectOption(learnerID, 0)
	require.NoError(t, err)
	require.NotNil(t, view.Snapshot.SelectedOptionIndex)
	assert.Equal(t, 1, *view.Snapshot.SelectedOptionIndex)
}

func TestService_NoAttempt(t *testing.T) {
	svc, _, _ := newServiceFixture(t)

	_, err := svc.Current(uuid.New())
	assert.ErrorIs(t, err, ErrNoAttempt)
	_, err = svc.SelectOption(uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNoAttempt)
	_, err = svc.Advance(context.Background(), uuid.New(), "Ada")
	assert.ErrorIs(t, err, ErrNoAttempt)
	_, err = svc.Reset(uuid.New())
	assert.ErrorIs(t, err, ErrNoAttempt)
}

func TestService_CompletionPersistsOnce(t *testing.T) {
	svc, store, recorder := newServiceFixture(t)
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)

	view := completePass(t, svc, learnerID, []int{1, 0})
	assert.True(t, view.Snapshot.Completed)
	assert.Nil(t, view.Question, "no question exposed after completion")

	require.Len(t, store.inserted, 1)
	assert.Equal(t, learnerID, store.inserted[0].LearnerID)
	assert.Equal(t, 2, store.inserted[0].CorrectCount)
	assert.Equal(t, 2, store.inserted[0].QuestionCount)

	require.Len(t, recorder.recorded, 1)
	assert.Equal(t, "Ada", recorder.recorded[0].DisplayName)
	assert.Equal(t, 2, recorder.recorded[0].Score)

	// Further advances on a completed attempt persist nothing new.
	_, err = svc.Advance(context.Background(), learnerID, "Ada")
	require.NoError(t, err)
	assert.Len(t, store.inserted, 1)
	assert.Len(t, recorder.recorded, 1)
}

func TestService_ResetAllowsSecondPersistedPass(t *testing.T) {
	svc, store, _ := newServiceFixture(t)
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)

	completePass(t, svc, learnerID, []int{1, 0})
	require.Len(t, store.inserted, 1)

	view, err := svc.Reset(learnerID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Snapshot.CurrentIndex)
	assert.False(t, view.Snapshot.Completed)

	completePass(t, svc, learnerID, []int{0, 0})
	require.Len(t, store.inserted, 2)
	assert.Equal(t, 1, store.inserted[1].CorrectCount)
}

func TestService_StoreFailureDoesNotSurface(t *testing.T) {
	svc, store, recorder := newServiceFixture(t)
	store.insertErr = errors.New("database unavailable")
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)

	view := completePass(t, svc, learnerID, []int{1, 0})
	assert.True(t, view.Snapshot.Completed)
	// Leaderboard recording still ran despite the storage failure.
	assert.Len(t, recorder.recorded, 1)
}

func TestService_StartReplacesAttemptInProgress(t *testing.T) {
	svc, _, _ := newServiceFixture(t)
	learnerID := uuid.New()
	_, err := svc.Start(learnerID)
	require.NoError(t, err)
	_, err = svc.SelectOption(learnerID, 1)
	require.NoError(t, err)
	_, err = svc.Advance(context.Background(), learnerID, "Ada")
	require.NoError(t, err)

	view, err := svc.Start(learnerID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Snapshot.CurrentIndex)
	assert.Equal(t, 0, view.Snapshot.CorrectCount)
}
