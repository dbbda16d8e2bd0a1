package postgres

import (
	"context"
	"fmt"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

// Create writes the quiz and its nested questions/options atomically.
// gorm persists the associations along with the parent row; the
// surrounding transaction guarantees no partial quiz survives a
// failure.
func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	})
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Options").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) List(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := q.db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Options").
		Order("id ASC").
		Find(&quizzes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (q *QuizPostgreSQL) ListBySubject(ctx context.Context, subject models.Subject) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := q.db.WithContext(ctx).
		Preload("Questions").
		Preload("Questions.Options").
		Where("subject = ?", subject).
		Order("id ASC").
		Find(&quizzes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes by subject: %w", err)
	}
	return quizzes, nil
}

func (q *QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := q.db.WithContext(ctx).Delete(&models.Quiz{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete quiz: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
