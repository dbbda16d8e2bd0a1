package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studycompanion/study-service/internal/events"
	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"github.com/studycompanion/study-service/internal/validator"
)

type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, id uint) (*models.Task, error)
	Create(ctx context.Context, req *CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, id uint) error

	ListTimeEntries(ctx context.Context, taskID uint) ([]models.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, taskID uint, req *CreateTimeEntryRequest) (*models.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, id uint, req *UpdateTimeEntryRequest) (*models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id uint) error
}

type CreateTaskRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description *string        `json:"description"`
	Subject     models.Subject `json:"subject" validate:"required,subject"`
}

// UpdateTaskRequest is a partial update; nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Subject     *models.Subject `json:"subject" validate:"omitempty,subject"`
	Completed   *bool           `json:"completed"`
}

type CreateTimeEntryRequest struct {
	StartTime *time.Time `json:"startTime" validate:"required"`
	EndTime   *time.Time `json:"endTime"`
}

// UpdateTimeEntryRequest mirrors the original PATCH semantics: a nil
// StartTime leaves the column alone, while a nil EndTime clears it to
// NULL. An update that omits endTime therefore erases an existing end
// time. Known gap, kept on purpose.
type UpdateTimeEntryRequest struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

type taskService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewTaskService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
) TaskService {
	return &taskService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.repo.Task().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.repo.Task().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
	}
	if err := s.repo.Task().Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task created", "task_id", task.ID, "subject", task.Subject)
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Task().Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check task existence: %w", err)
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Subject != nil {
		fields["subject"] = *req.Subject
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}

	task, err := s.repo.Task().Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if req.Completed != nil && *req.Completed {
		s.publishEvent(ctx, events.NewStudyEvent(events.EventTaskCompleted, events.TaskCompletedEvent{
			TaskID:    task.ID,
			Title:     task.Title,
			Subject:   string(task.Subject),
			Completed: task.Completed,
		}))
	}

	s.logger.Info("Task updated", "task_id", task.ID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	exists, err := s.repo.Task().Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check task existence: %w", err)
	}
	if !exists {
		return ErrTaskNotFound
	}

	// Time entries go with the task via the cascade constraint. A
	// running timer is not stopped here; only the client does that.
	if err := s.repo.Task().Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted", "task_id", id)
	return nil
}

func (s *taskService) ListTimeEntries(ctx context.Context, taskID uint) ([]models.TimeEntry, error) {
	entries, err := s.repo.TimeEntry().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

func (s *taskService) CreateTimeEntry(ctx context.Context, taskID uint, req *CreateTimeEntryRequest) (*models.TimeEntry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry := &models.TimeEntry{
		TaskID:    taskID,
		StartTime: *req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.TimeEntry().Create(ctx, entry); err != nil {
		return nil, err
	}

	if entry.EndTime == nil {
		s.publishEvent(ctx, events.NewStudyEvent(events.EventTimerStarted, events.TimerEvent{
			TaskID:      entry.TaskID,
			TimeEntryID: entry.ID,
			StartTime:   entry.StartTime,
		}))
	}

	s.logger.Info("Time entry created", "time_entry_id", entry.ID, "task_id", taskID)
	return entry, nil
}

// UpdateTimeEntry applies the PATCH semantics described on
// UpdateTimeEntryRequest. No existence probe: a missing id surfaces as
// a store failure.
func (s *taskService) UpdateTimeEntry(ctx context.Context, id uint, req *UpdateTimeEntryRequest) (*models.TimeEntry, error) {
	fields := map[string]interface{}{
		"end_time": req.EndTime,
	}
	if req.StartTime != nil {
		fields["start_time"] = *req.StartTime
	}

	entry, err := s.repo.TimeEntry().Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	if req.EndTime != nil {
		s.publishEvent(ctx, events.NewStudyEvent(events.EventTimerStopped, events.TimerEvent{
			TaskID:      entry.TaskID,
			TimeEntryID: entry.ID,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
		}))
	}

	s.logger.Info("Time entry updated", "time_entry_id", entry.ID)
	return entry, nil
}

func (s *taskService) DeleteTimeEntry(ctx context.Context, id uint) error {
	if err := s.repo.TimeEntry().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	s.logger.Info("Time entry deleted", "time_entry_id", id)
	return nil
}

func (s *taskService) publishEvent(ctx context.Context, event *events.StudyEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStudyEvent(ctx, event); err != nil {
		s.logger.Warn("Study event publish failed", "event_type", event.Type, "error", err)
	}
}
