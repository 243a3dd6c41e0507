package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bioedu-labs/biobuddy-platform/internal/content"
)

func twoQuestionBank() []content.QuizQuestion {
	return []content.QuizQuestion{
		{
			ID:                 1,
			Prompt:             "first",
			Options:            []string{"a", "b", "c"},
			CorrectOptionIndex: 1,
			Explanation:        "because",
		},
		{
			ID:                 2,
			Prompt:             "second",
			Options:            []string{"x", "y"},
			CorrectOptionIndex: 0,
			Explanation:        "because",
		},
	}
}

func TestNewSessionRejectsEmptyBank(t *testing.T) {
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = NewSession([]content.QuizQuestion{})
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestSelectOptionFirstAnswerIsFinal(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	assert.True(t, s.SelectOption(1))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.CorrectCount)
	require.NotNil(t, snap.SelectedOptionIndex)
	assert.Equal(t, 1, *snap.SelectedOptionIndex)

	// Second call on the same question changes nothing, even if correct.
	assert.False(t, s.SelectOption(0))
	assert.False(t, s.SelectOption(1))
	after := s.Snapshot()
	assert.Equal(t, snap, after)
}

func TestSelectOptionOutOfRangeIsNoOp(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	assert.False(t, s.SelectOption(-1))
	assert.False(t, s.SelectOption(3))

	snap := s.Snapshot()
	assert.False(t, snap.Answered)
	assert.Equal(t, 0, snap.CorrectCount)
	assert.Nil(t, snap.SelectedOptionIndex)
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	before := s.Snapshot()
	assert.False(t, s.Advance())
	assert.Equal(t, before, s.Snapshot())
}

func TestScoreDenominatorCountsSubmittedOnly(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	correct, answered := s.Score()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 0, answered)

	s.SelectOption(1)
	correct, answered = s.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, answered)

	s.Advance()
	correct, answered = s.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, answered, "unanswered current question is not counted")
}

func TestFullPassPerfectScore(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	require.True(t, s.SelectOption(1))
	assert.Equal(t, 1, s.Snapshot().CorrectCount)

	require.True(t, s.Advance())
	assert.Equal(t, 1, s.Snapshot().CurrentIndex)

	require.True(t, s.SelectOption(0))
	assert.Equal(t, 2, s.Snapshot().CorrectCount)

	require.True(t, s.Advance())
	snap := s.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, 2, snap.CorrectCount)
	assert.Equal(t, 2, snap.AnsweredCount)
}

func TestCorrectCountBounds(t *testing.T) {
	bank := content.QuestionBank()
	s, err := NewSession(bank)
	require.NoError(t, err)

	// Answer everything with option 0 and check the invariant at each step.
	for !s.Completed() {
		prevCorrect := s.Snapshot().CorrectCount
		s.SelectOption(0)
		snap := s.Snapshot()
		assert.GreaterOrEqual(t, snap.CorrectCount, prevCorrect)
		assert.LessOrEqual(t, snap.CorrectCount-prevCorrect, 1)
		assert.LessOrEqual(t, snap.CorrectCount, len(bank))
		s.Advance()
	}
}

func TestResetRestoresInitialSnapshot(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)
	initial := s.Snapshot()

	s.SelectOption(1)
	s.Advance()
	s.SelectOption(1) // wrong on purpose
	s.Advance()
	require.True(t, s.Completed())

	s.Reset()
	assert.Equal(t, initial, s.Snapshot())
	assert.Equal(t, "first", s.Current().Prompt, "same bank, same order")
}

func TestCompletedSessionIgnoresFurtherInput(t *testing.T) {
	s, err := NewSession(twoQuestionBank())
	require.NoError(t, err)

	s.SelectOption(1)
	s.Advance()
	s.SelectOption(0)
	s.Advance()
	require.True(t, s.Completed())

	done := s.Snapshot()
	assert.False(t, s.SelectOption(0))
	assert.False(t, s.Advance())
	assert.Equal(t, done, s.Snapshot())
}
