package postgres

import (
	"context"
	"fmt"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"gorm.io/gorm"
)

type FlashcardPostgreSQL struct {
	db *gorm.DB
}

func NewFlashcardPostgreSQL(db *gorm.DB) repositories.FlashcardRepository {
	return &FlashcardPostgreSQL{db: db}
}

func (f *FlashcardPostgreSQL) Create(ctx context.Context, card *models.Flashcard) error {
	if err := f.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("failed to create flashcard: %w", err)
	}
	return nil
}

func (f *FlashcardPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	if err := f.db.WithContext(ctx).First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (f *FlashcardPostgreSQL) List(ctx context.Context, subject *models.Subject) ([]models.Flashcard, error) {
	query := f.db.WithContext(ctx).Model(&models.Flashcard{})
	if subject != nil {
		query = query.Where("subject = ?", *subject)
	}

	var cards []models.Flashcard
	if err := query.Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return cards, nil
}

func (f *FlashcardPostgreSQL) Update(ctx context.Context, card *models.Flashcard) error {
	if err := f.db.WithContext(ctx).Save(card).Error; err != nil {
		return fmt.Errorf("failed to update flashcard: %w", err)
	}
	return nil
}

func (f *FlashcardPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := f.db.WithContext(ctx).Delete(&models.Flashcard{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete flashcard: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *FlashcardPostgreSQL) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&models.Flashcard{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check flashcard existence: %w", err)
	}
	return count > 0, nil
}
