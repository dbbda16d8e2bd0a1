package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/studycompanion/study-service/internal/cache"
	"github.com/studycompanion/study-service/internal/events"
	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"github.com/studycompanion/study-service/internal/validator"
)

const (
	groupedQuizzesCacheKey = "quizzes:by_subject"
	groupedQuizzesCacheTTL = 5 * time.Minute
)

type QuizService interface {
	// ListGrouped returns all quizzes keyed by subject.
	ListGrouped(ctx context.Context) (map[models.Subject][]models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetBySubject(ctx context.Context, subject models.Subject) ([]models.Quiz, error)
	Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id uint) error
}

type CreateQuizRequest struct {
	Subject   models.Subject          `json:"subject" validate:"required,subject"`
	Questions []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Content string                `json:"content" validate:"required"`
	Points  int                   `json:"points" validate:"required,min=1"`
	Options []CreateOptionRequest `json:"options" validate:"required,min=2,dive"`
}

type CreateOptionRequest struct {
	Content   string `json:"content" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type quizService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

// NewQuizService builds the quiz service. cacheService may be nil when
// redis is unavailable; the service then always reads from the store.
func NewQuizService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheService,
		publisher: publisher,
	}
}

func (s *quizService) ListGrouped(ctx context.Context) (map[models.Subject][]models.Quiz, error) {
	if s.cache != nil {
		var cached map[models.Subject][]models.Quiz
		err := s.cache.Get(ctx, groupedQuizzesCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Grouped quiz cache read failed", "error", err)
		}
	}

	quizzes, err := s.repo.Quiz().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	grouped := make(map[models.Subject][]models.Quiz)
	for _, quiz := range quizzes {
		grouped[quiz.Subject] = append(grouped[quiz.Subject], quiz)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, groupedQuizzesCacheKey, grouped, groupedQuizzesCacheTTL); err != nil {
			s.logger.Warn("Grouped quiz cache write failed", "error", err)
		}
	}

	return grouped, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) GetBySubject(ctx context.Context, subject models.Subject) ([]models.Quiz, error) {
	if !subject.IsValid() {
		return nil, ErrInvalidSubject
	}
	quizzes, err := s.repo.Quiz().ListBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes by subject: %w", err)
	}
	return quizzes, nil
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{Subject: req.Subject}
	for _, q := range req.Questions {
		question := models.Question{
			Content: q.Content,
			Points:  q.Points,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.Option{
				Content:   o.Content,
				IsCorrect: o.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.invalidateGroupedCache(ctx)
	s.publishEvent(ctx, events.NewStudyEvent(events.EventQuizCreated, events.QuizCreatedEvent{
		QuizID:        quiz.ID,
		Subject:       string(quiz.Subject),
		QuestionCount: len(quiz.Questions),
		TotalPoints:   quiz.TotalPoints(),
	}))

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "subject", quiz.Subject, "questions", len(quiz.Questions))
	return quiz, nil
}

// Delete removes the quiz and, through the cascade, its questions and
// options. There is no existence probe: a missing id comes back as a
// store failure, matching the flashcard/task vs quiz error asymmetry.
func (s *quizService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	s.invalidateGroupedCache(ctx)
	s.logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}

func (s *quizService) invalidateGroupedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, groupedQuizzesCacheKey); err != nil {
		s.logger.Warn("Grouped quiz cache invalidation failed", "error", err)
	}
}

func (s *quizService) publishEvent(ctx context.Context, event *events.StudyEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStudyEvent(ctx, event); err != nil {
		s.logger.Warn("Study event publish failed", "event_type", event.Type, "error", err)
	}
}
