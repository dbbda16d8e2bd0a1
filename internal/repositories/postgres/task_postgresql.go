package postgres

import (
	"context"
	"fmt"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"gorm.io/gorm"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (t *TaskPostgreSQL) Create(ctx context.Context, task *models.Task) error {
	if err := t.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (t *TaskPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := t.db.WithContext(ctx).
		Preload("TimeEntries").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *TaskPostgreSQL) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := t.db.WithContext(ctx).
		Preload("TimeEntries").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the given columns and returns the task with its time
// entries reloaded.
func (t *TaskPostgreSQL) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Task, error) {
	err := t.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t.GetByID(ctx, id)
}

func (t *TaskPostgreSQL) Delete(ctx context.Context, id uint) error {
	res := t.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t *TaskPostgreSQL) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := t.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}
