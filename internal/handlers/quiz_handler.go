package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/services"
	"github.com/studycompanion/study-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// ListQuizzes returns every quiz with nested questions and options,
// grouped into a subject-keyed mapping.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	grouped, err := h.quizService.ListGrouped(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch quizzes", err)
		return
	}

	c.JSON(http.StatusOK, grouped)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to fetch quiz")
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) GetQuizzesBySubject(c *gin.Context) {
	subject, err := models.ParseSubject(c.Param("subject"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", nil)
		return
	}

	quizzes, err := h.quizService.GetBySubject(c.Request.Context(), subject)
	if err != nil {
		h.handleServiceError(c, err, "Failed to fetch quizzes")
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// CreateQuiz writes the quiz and its nested questions/options in one
// transaction and responds with the created aggregate, generated ids
// included.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create quiz")
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz removes a quiz and cascades to its questions and options.
// A missing id is not probed for first, so it surfaces as a store
// failure rather than a 404.
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quiz", err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *QuizHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	if invalidSubject, ok := isValidationError(err); ok {
		if invalidSubject {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", err)
		} else {
			h.RespondWithError(c, http.StatusBadRequest, "Missing required fields", err)
		}
		return
	}

	switch {
	case errors.Is(err, services.ErrQuizNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Quiz not found", nil)
	case errors.Is(err, services.ErrInvalidSubject):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
