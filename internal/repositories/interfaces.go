package repositories

import (
	"context"
	"errors"

	"github.com/studycompanion/study-service/internal/models"
	"gorm.io/gorm"
)

// ===== REPOSITORY INTERFACES =====

type FlashcardRepository interface {
	Create(ctx context.Context, card *models.Flashcard) error
	GetByID(ctx context.Context, id uint) (*models.Flashcard, error)
	// List returns cards newest-first, optionally filtered by subject.
	List(ctx context.Context, subject *models.Subject) ([]models.Flashcard, error)
	Update(ctx context.Context, card *models.Flashcard) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type QuizRepository interface {
	// Create writes the quiz together with its questions and options
	// in a single transaction.
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	// List returns all quizzes with questions and options preloaded,
	// oldest-first so grouping preserves first-seen order.
	List(ctx context.Context) ([]models.Quiz, error)
	ListBySubject(ctx context.Context, subject models.Subject) ([]models.Quiz, error)
	// Delete removes the quiz; questions and options go with it via
	// the cascade constraint. A missing id surfaces as
	// gorm.ErrRecordNotFound, deliberately without a prior existence
	// probe.
	Delete(ctx context.Context, id uint) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	// List returns tasks newest-first with their time entries preloaded.
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type TimeEntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	// ListByTask returns entries for the task ordered newest-start-first.
	ListByTask(ctx context.Context, taskID uint) ([]models.TimeEntry, error)
	// Update applies fields to the entry and reloads it. No existence
	// probe: a missing id surfaces as gorm.ErrRecordNotFound.
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.TimeEntry, error)
	Delete(ctx context.Context, id uint) error
}

// Repository bundles all repositories behind one dependency.
type Repository interface {
	Flashcard() FlashcardRepository
	Quiz() QuizRepository
	Task() TaskRepository
	TimeEntry() TimeEntryRepository
}

// IsNotFoundError reports whether err is a record-miss from the store.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
