package session

import (
	"context"
	"math/rand"
	"testing"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardSource struct {
	cards map[models.Subject][]models.Flashcard
	err   error
}

func (f *fakeCardSource) FlashcardsBySubject(_ context.Context, subject models.Subject) ([]models.Flashcard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cards[subject], nil
}

func mathCards() []models.Flashcard {
	return []models.Flashcard{
		{ID: 1, Question: "What is 2+2?", Answer: "4", Subject: models.SubjectMathematics},
		{ID: 2, Question: "What is 3*3?", Answer: "9", Subject: models.SubjectMathematics},
		{ID: 3, Question: "What is 10/2?", Answer: "5", Subject: models.SubjectMathematics},
	}
}

func newCardSession(t *testing.T) *FlashcardSession {
	t.Helper()
	source := &fakeCardSource{cards: map[models.Subject][]models.Flashcard{
		models.SubjectMathematics: mathCards(),
	}}
	s := NewFlashcardSession(source, rand.New(rand.NewSource(1)))
	require.NoError(t, s.Start(context.Background(), models.SubjectMathematics))
	return s
}

func TestFlashcardSession_Start(t *testing.T) {
	s := newCardSession(t)

	assert.Equal(t, FlashcardViewSession, s.View())
	assert.Equal(t, 3, s.Remaining())
	assert.NotNil(t, s.Current())
}

func TestFlashcardSession_StartEmptySubject(t *testing.T) {
	source := &fakeCardSource{cards: map[models.Subject][]models.Flashcard{}}
	s := NewFlashcardSession(source, rand.New(rand.NewSource(1)))

	err := s.Start(context.Background(), models.SubjectPhysics)
	assert.ErrorIs(t, err, ErrNoCards)
	assert.Equal(t, FlashcardViewSubjectSelect, s.View())
}

func TestFlashcardSession_AllCorrectCompletes(t *testing.T) {
	s := newCardSession(t)

	s.MarkCorrect()
	s.MarkCorrect()
	s.MarkCorrect()

	assert.Equal(t, FlashcardViewCompleted, s.View())
	correct, incorrect := s.Counts()
	assert.Equal(t, 3, correct)
	assert.Equal(t, 0, incorrect)
	assert.Equal(t, 100, s.Score())

	// The deck is restored so the session can run again.
	assert.Equal(t, 3, s.Remaining())
}

func TestFlashcardSession_WrongAnswersReachScore(t *testing.T) {
	s := newCardSession(t)

	s.MarkIncorrect()
	s.MarkCorrect()
	s.MarkCorrect()

	assert.Equal(t, FlashcardViewScore, s.View())
	assert.Len(t, s.WrongAnswers(), 1)
	assert.Equal(t, 67, s.Score())
}

func TestFlashcardSession_ReviewKeepsCounters(t *testing.T) {
	s := newCardSession(t)

	s.MarkIncorrect()
	s.MarkIncorrect()
	s.MarkCorrect()
	require.Equal(t, FlashcardViewScore, s.View())

	require.NoError(t, s.ReviewWrongAnswers())
	assert.Equal(t, FlashcardViewSession, s.View())
	assert.True(t, s.InReview())
	assert.Equal(t, 2, s.Remaining())

	correct, incorrect := s.Counts()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, incorrect)

	// Clearing the review pass ends with no wrong answers left.
	s.MarkCorrect()
	s.MarkCorrect()
	assert.Equal(t, FlashcardViewCompleted, s.View())
}

func TestFlashcardSession_ReviewOutsideScoreFails(t *testing.T) {
	s := newCardSession(t)
	assert.ErrorIs(t, s.ReviewWrongAnswers(), ErrNothingToReview)
}

func TestFlashcardSession_NextCycles(t *testing.T) {
	s := newCardSession(t)

	first := s.Current().ID
	s.Next()
	s.Next()
	s.Next()
	assert.Equal(t, first, s.Current().ID)
}

func TestFlashcardSession_FlipResetsOnAdvance(t *testing.T) {
	s := newCardSession(t)

	s.Flip()
	assert.True(t, s.Flipped())
	s.Next()
	assert.False(t, s.Flipped())

	s.Flip()
	s.MarkCorrect()
	assert.False(t, s.Flipped())
}

func TestFlashcardSession_RetryResetsCounters(t *testing.T) {
	s := newCardSession(t)

	s.MarkIncorrect()
	s.MarkCorrect()
	s.MarkCorrect()
	require.NoError(t, s.ReviewWrongAnswers())

	require.NoError(t, s.RetrySameSubject(context.Background()))
	correct, incorrect := s.Counts()
	assert.Equal(t, 0, correct)
	assert.Equal(t, 0, incorrect)
	assert.False(t, s.InReview())
	assert.Equal(t, 3, s.Remaining())
}

func TestFlashcardSession_Reset(t *testing.T) {
	s := newCardSession(t)
	s.MarkCorrect()
	s.Reset()

	assert.Equal(t, FlashcardViewSubjectSelect, s.View())
	assert.Nil(t, s.Current())
}
