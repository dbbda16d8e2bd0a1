package session

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/studycompanion/study-service/internal/models"
)

// CardSource supplies the cards for a subject, typically the HTTP API.
type CardSource interface {
	FlashcardsBySubject(ctx context.Context, subject models.Subject) ([]models.Flashcard, error)
}

// ErrNoCards is returned when the chosen subject has no flashcards;
// the session stays on subject selection.
var ErrNoCards = errors.New("no flashcards for subject")

// ErrNothingToReview is returned when review is requested outside the
// score view or with an empty wrong-answer list.
var ErrNothingToReview = errors.New("nothing to review")

// FlashcardView names the screens of a flashcard session.
type FlashcardView int

const (
	FlashcardViewSubjectSelect FlashcardView = iota
	FlashcardViewSession
	FlashcardViewScore
	FlashcardViewCompleted
)

// FlashcardSession walks a shuffled deck, tracking correct/incorrect
// marks and collecting wrong answers for a review pass. All state
// changes go through the named transition methods.
type FlashcardSession struct {
	source CardSource
	rng    *rand.Rand

	subject   models.Subject
	deck      []models.Flashcard // full shuffled set for the subject
	remaining []models.Flashcard
	index     int
	flipped   bool

	correct   int
	incorrect int
	wrong     []models.Flashcard

	started    bool
	showScore  bool
	reviewMode bool
}

// NewFlashcardSession creates a session in subject selection. A nil
// rng gets a time-seeded one; tests pass a fixed seed.
func NewFlashcardSession(source CardSource, rng *rand.Rand) *FlashcardSession {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FlashcardSession{source: source, rng: rng}
}

// Start fetches and shuffles the subject's cards and enters the
// session. An empty subject leaves the session on subject selection.
func (s *FlashcardSession) Start(ctx context.Context, subject models.Subject) error {
	cards, err := s.source.FlashcardsBySubject(ctx, subject)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return ErrNoCards
	}

	deck := make([]models.Flashcard, len(cards))
	copy(deck, cards)
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	s.subject = subject
	s.deck = deck
	s.remaining = append([]models.Flashcard(nil), deck...)
	s.index = 0
	s.flipped = false
	s.correct = 0
	s.incorrect = 0
	s.wrong = nil
	s.started = true
	s.showScore = false
	s.reviewMode = false
	return nil
}

// View reports the current screen.
func (s *FlashcardSession) View() FlashcardView {
	switch {
	case !s.started:
		return FlashcardViewSubjectSelect
	case s.showScore && len(s.wrong) == 0:
		return FlashcardViewCompleted
	case s.showScore:
		return FlashcardViewScore
	default:
		return FlashcardViewSession
	}
}

// Current returns the face-up card, or nil outside a session pass.
func (s *FlashcardSession) Current() *models.Flashcard {
	if !s.started || s.showScore || len(s.remaining) == 0 {
		return nil
	}
	return &s.remaining[s.index]
}

// Flip toggles the card face.
func (s *FlashcardSession) Flip() {
	s.flipped = !s.flipped
}

func (s *FlashcardSession) Flipped() bool {
	return s.flipped
}

// MarkCorrect removes the current card and advances. Exhausting the
// deck with no wrong answers restores the full deck and shows the
// completed view; otherwise the score view takes over.
func (s *FlashcardSession) MarkCorrect() {
	if len(s.remaining) == 0 {
		return
	}
	s.correct++
	s.removeCurrent()

	if len(s.remaining) == 0 {
		if len(s.wrong) == 0 {
			s.remaining = append([]models.Flashcard(nil), s.deck...)
			s.index = 0
		}
		s.showScore = true
	}
	s.flipped = false
}

// MarkIncorrect records the card for review, removes it and advances.
func (s *FlashcardSession) MarkIncorrect() {
	if len(s.remaining) == 0 {
		return
	}
	s.incorrect++
	s.wrong = append(s.wrong, s.remaining[s.index])
	s.removeCurrent()

	if len(s.remaining) == 0 {
		s.showScore = true
	}
	s.flipped = false
}

func (s *FlashcardSession) removeCurrent() {
	s.remaining = append(s.remaining[:s.index], s.remaining[s.index+1:]...)
	if len(s.remaining) > 0 && s.index >= len(s.remaining) {
		s.index = 0
	}
}

// Next advances to the next card circularly without marking.
func (s *FlashcardSession) Next() {
	if len(s.remaining) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.remaining)
	s.flipped = false
}

// Shuffle reshuffles the remaining cards in place.
func (s *FlashcardSession) Shuffle() {
	s.rng.Shuffle(len(s.remaining), func(i, j int) {
		s.remaining[i], s.remaining[j] = s.remaining[j], s.remaining[i]
	})
	s.index = 0
	s.flipped = false
}

// ReviewWrongAnswers replays the wrong-answer list. Counters carry
// over; only the deck position and score flag reset.
func (s *FlashcardSession) ReviewWrongAnswers() error {
	if !s.showScore || len(s.wrong) == 0 {
		return ErrNothingToReview
	}
	s.remaining = s.wrong
	s.wrong = nil
	s.index = 0
	s.flipped = false
	s.showScore = false
	s.reviewMode = true
	return nil
}

// RetrySameSubject refetches and reshuffles the full set and resets
// all counters, leaving review mode.
func (s *FlashcardSession) RetrySameSubject(ctx context.Context) error {
	return s.Start(ctx, s.subject)
}

// Reset returns to subject selection, clearing everything.
func (s *FlashcardSession) Reset() {
	*s = FlashcardSession{source: s.source, rng: s.rng}
}

// Score is the percentage of correct marks over all marks.
func (s *FlashcardSession) Score() int {
	total := s.correct + s.incorrect
	if total == 0 {
		return 0
	}
	return int(float64(s.correct)/float64(total)*100 + 0.5)
}

func (s *FlashcardSession) Counts() (correct, incorrect int) {
	return s.correct, s.incorrect
}

func (s *FlashcardSession) WrongAnswers() []models.Flashcard {
	return s.wrong
}

func (s *FlashcardSession) Remaining() int {
	return len(s.remaining)
}

func (s *FlashcardSession) InReview() bool {
	return s.reviewMode
}
