package postgres

import (
	"context"
	"fmt"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"gorm.io/gorm"
)

type TimeEntryPostgreSQL struct {
	db *gorm.DB
}

func NewTimeEntryPostgreSQL(db *gorm.DB) repositories.TimeEntryRepository {
	return &TimeEntryPostgreSQL{db: db}
}

func (t *TimeEntryPostgreSQL) Create(ctx context.Context, entry *models.TimeEntry) error {
	if err := t.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

func (t *TimeEntryPostgreSQL) ListByTask(ctx context.Context, taskID uint) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := t.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("start_time DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

func (t *TimeEntryPostgreSQL) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.TimeEntry, error) {
	res := t.db.WithContext(ctx).
		Model(&models.TimeEntry{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var entry models.TimeEntry
	if err := t.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (t *TimeEntryPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Delete(&models.TimeEntry{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete time entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
