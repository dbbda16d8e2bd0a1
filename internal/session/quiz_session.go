package session

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/studycompanion/study-service/internal/models"
)

// QuizSource supplies quizzes grouped by subject, typically the HTTP API.
type QuizSource interface {
	GroupedQuizzes(ctx context.Context) (map[models.Subject][]models.Quiz, error)
}

// ErrNoQuizzes is returned when the chosen subject has no quizzes.
var ErrNoQuizzes = errors.New("no quizzes for subject")

// ErrNoSelection is returned when advancing without a selected option.
var ErrNoSelection = errors.New("no option selected")

// questionsPerRound caps a round at five questions.
const questionsPerRound = 5

// QuizView names the screens of a quiz session.
type QuizView int

const (
	QuizViewSubjectSelect QuizView = iota
	QuizViewQuestion
	QuizViewResult
	QuizViewAnswers
)

// Tier buckets the final percentage.
type Tier string

const (
	TierExcellent      Tier = "excellent"
	TierGood           Tier = "good"
	TierKeepPracticing Tier = "keep practicing"
)

// Feedback is what Advance reports for the question just answered.
type Feedback struct {
	Correct       bool
	Points        int
	CorrectAnswer string
}

// QuizSession runs one quiz round at a time: a random quiz of the
// chosen subject, its questions shuffled and capped, one selection
// per question, score accumulated per correct answer's points.
type QuizSession struct {
	source QuizSource
	rng    *rand.Rand

	quizzes map[models.Subject][]models.Quiz

	subject   models.Subject
	questions []models.Question
	index     int
	selected  map[uint]uint // question id -> option id
	score     int
	total     int

	started        bool
	completed      bool
	viewingAnswers bool
}

// NewQuizSession creates a session in subject selection. A nil rng
// gets a time-seeded one; tests pass a fixed seed.
func NewQuizSession(source QuizSource, rng *rand.Rand) *QuizSession {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizSession{source: source, rng: rng}
}

// Load fetches the grouped quizzes once per session.
func (s *QuizSession) Load(ctx context.Context) error {
	quizzes, err := s.source.GroupedQuizzes(ctx)
	if err != nil {
		return err
	}
	s.quizzes = quizzes
	return nil
}

// Subjects lists the subjects that have at least one quiz, in the
// canonical subject order.
func (s *QuizSession) Subjects() []models.Subject {
	var out []models.Subject
	for _, subject := range models.AllSubjects() {
		if len(s.quizzes[subject]) > 0 {
			out = append(out, subject)
		}
	}
	return out
}

// Start picks a random quiz of the subject, shuffles its questions
// and keeps at most five.
func (s *QuizSession) Start(subject models.Subject) error {
	pool := s.quizzes[subject]
	if len(pool) == 0 {
		return ErrNoQuizzes
	}
	quiz := pool[s.rng.Intn(len(pool))]

	questions := make([]models.Question, len(quiz.Questions))
	copy(questions, quiz.Questions)
	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	if len(questions) > questionsPerRound {
		questions = questions[:questionsPerRound]
	}

	total := 0
	for _, q := range questions {
		total += q.Points
	}

	s.subject = subject
	s.questions = questions
	s.index = 0
	s.selected = make(map[uint]uint)
	s.score = 0
	s.total = total
	s.started = true
	s.completed = false
	s.viewingAnswers = false
	return nil
}

// View reports the current screen.
func (s *QuizSession) View() QuizView {
	switch {
	case !s.started:
		return QuizViewSubjectSelect
	case s.viewingAnswers:
		return QuizViewAnswers
	case s.completed:
		return QuizViewResult
	default:
		return QuizViewQuestion
	}
}

// Current returns the question under answer, or nil after completion.
func (s *QuizSession) Current() *models.Question {
	if !s.started || s.completed {
		return nil
	}
	return &s.questions[s.index]
}

// Select records the option choice for the current question.
func (s *QuizSession) Select(optionID uint) {
	q := s.Current()
	if q == nil {
		return
	}
	s.selected[q.ID] = optionID
}

// Selected returns the current question's recorded choice, if any.
func (s *QuizSession) Selected() (uint, bool) {
	q := s.Current()
	if q == nil {
		return 0, false
	}
	id, ok := s.selected[q.ID]
	return id, ok
}

// Advance scores the current question and moves on, or completes the
// round on the last question. It fails without a selection.
func (s *QuizSession) Advance() (Feedback, error) {
	q := s.Current()
	if q == nil {
		return Feedback{}, ErrNoSelection
	}
	optionID, ok := s.selected[q.ID]
	if !ok {
		return Feedback{}, ErrNoSelection
	}

	var fb Feedback
	fb.Points = q.Points
	for _, opt := range q.Options {
		if opt.IsCorrect {
			fb.CorrectAnswer = opt.Content
		}
		if opt.ID == optionID && opt.IsCorrect {
			fb.Correct = true
		}
	}
	if fb.Correct {
		s.score += q.Points
	}

	if s.index < len(s.questions)-1 {
		s.index++
	} else {
		s.completed = true
	}
	return fb, nil
}

// Score is the accumulated points, TotalPoints the round maximum.
func (s *QuizSession) Score() int       { return s.score }
func (s *QuizSession) TotalPoints() int { return s.total }

// Percentage is the rounded score share of the round maximum.
func (s *QuizSession) Percentage() int {
	if s.total == 0 {
		return 0
	}
	return int(math.Round(float64(s.score) / float64(s.total) * 100))
}

// ResultTier buckets the percentage for the result screen.
func (s *QuizSession) ResultTier() Tier {
	p := s.Percentage()
	switch {
	case p >= 80:
		return TierExcellent
	case p >= 60:
		return TierGood
	default:
		return TierKeepPracticing
	}
}

// ViewAnswers switches the completed round to the answer review.
func (s *QuizSession) ViewAnswers() {
	if s.completed {
		s.viewingAnswers = true
	}
}

// Questions exposes the round's questions for the answer review.
func (s *QuizSession) Questions() []models.Question {
	return s.questions
}

// Answer returns the recorded choice for a question id.
func (s *QuizSession) Answer(questionID uint) (uint, bool) {
	id, ok := s.selected[questionID]
	return id, ok
}

// TryAgain starts a fresh round of the same subject, possibly with a
// different random quiz.
func (s *QuizSession) TryAgain() error {
	return s.Start(s.subject)
}

// Reset returns to subject selection. The loaded quizzes are kept.
func (s *QuizSession) Reset() {
	quizzes := s.quizzes
	*s = QuizSession{source: s.source, rng: s.rng, quizzes: quizzes}
}
