package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studycompanion/study-service/internal/services"
	"github.com/studycompanion/study-service/internal/utils"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService, logger utils.Logger) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		taskService: taskService,
	}
}

// ListTasks returns all tasks newest-first with their time entries.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id := parseIDParam(c, "taskId")
	if id == 0 {
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update of title, description, subject
// and completed.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := parseIDParam(c, "taskId")
	if id == 0 {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes the task; its time entries go with it through the
// cascade. A running timer is not stopped server-side.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := parseIDParam(c, "taskId")
	if id == 0 {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ListTimeEntries returns the task's entries ordered newest-start-first.
func (h *TaskHandler) ListTimeEntries(c *gin.Context) {
	id := parseIDParam(c, "taskId")
	if id == 0 {
		return
	}

	entries, err := h.taskService.ListTimeEntries(c.Request.Context(), id)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch time entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *TaskHandler) CreateTimeEntry(c *gin.Context) {
	id := parseIDParam(c, "taskId")
	if id == 0 {
		return
	}

	var req services.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	entry, err := h.taskService.CreateTimeEntry(c.Request.Context(), id, &req)
	if err != nil {
		if _, ok := isValidationError(err); ok {
			h.RespondWithError(c, http.StatusBadRequest, "Start time is required", err)
			return
		}
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to create time entry", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateTimeEntry patches startTime/endTime. An absent endTime clears
// the column to NULL. No existence probe: a missing id is a store
// failure, not a 404.
func (h *TaskHandler) UpdateTimeEntry(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	entry, err := h.taskService.UpdateTimeEntry(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to update time entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *TaskHandler) DeleteTimeEntry(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.taskService.DeleteTimeEntry(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to delete time entry", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *TaskHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	if invalidSubject, ok := isValidationError(err); ok {
		if invalidSubject {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", err)
		} else {
			h.RespondWithError(c, http.StatusBadRequest, "Title and subject are required", err)
		}
		return
	}

	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Task not found", nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
