package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"github.com/studycompanion/study-service/internal/validator"
)

type FlashcardService interface {
	List(ctx context.Context, subject *models.Subject) ([]models.Flashcard, error)
	GetByID(ctx context.Context, id uint) (*models.Flashcard, error)
	GetBySubject(ctx context.Context, subject models.Subject) ([]models.Flashcard, error)
	Create(ctx context.Context, req *FlashcardRequest) (*models.Flashcard, error)
	Update(ctx context.Context, id uint, req *FlashcardRequest) (*models.Flashcard, error)
	Delete(ctx context.Context, id uint) error
}

// FlashcardRequest carries the writable flashcard fields. Create and
// update share the same full-body shape.
type FlashcardRequest struct {
	Question string         `json:"question" validate:"required"`
	Answer   string         `json:"answer" validate:"required"`
	Subject  models.Subject `json:"subject" validate:"required,subject"`
}

type flashcardService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFlashcardService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) FlashcardService {
	return &flashcardService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *flashcardService) List(ctx context.Context, subject *models.Subject) ([]models.Flashcard, error) {
	cards, err := s.repo.Flashcard().List(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return cards, nil
}

func (s *flashcardService) GetByID(ctx context.Context, id uint) (*models.Flashcard, error) {
	card, err := s.repo.Flashcard().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}
	return card, nil
}

func (s *flashcardService) GetBySubject(ctx context.Context, subject models.Subject) ([]models.Flashcard, error) {
	if !subject.IsValid() {
		return nil, ErrInvalidSubject
	}
	return s.List(ctx, &subject)
}

func (s *flashcardService) Create(ctx context.Context, req *FlashcardRequest) (*models.Flashcard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	card := &models.Flashcard{
		Question: req.Question,
		Answer:   req.Answer,
		Subject:  req.Subject,
	}
	if err := s.repo.Flashcard().Create(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("Flashcard created", "flashcard_id", card.ID, "subject", card.Subject)
	return card, nil
}

func (s *flashcardService) Update(ctx context.Context, id uint, req *FlashcardRequest) (*models.Flashcard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	card, err := s.repo.Flashcard().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("failed to get flashcard: %w", err)
	}

	card.Question = req.Question
	card.Answer = req.Answer
	card.Subject = req.Subject
	if err := s.repo.Flashcard().Update(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("Flashcard updated", "flashcard_id", card.ID)
	return card, nil
}

func (s *flashcardService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Flashcard().Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check flashcard existence: %w", err)
	}
	if !exists {
		return ErrFlashcardNotFound
	}

	if err := s.repo.Flashcard().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Flashcard deleted", "flashcard_id", id)
	return nil
}
