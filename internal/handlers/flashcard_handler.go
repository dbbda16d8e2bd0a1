package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/services"
	"github.com/studycompanion/study-service/internal/utils"
)

type FlashcardHandler struct {
	BaseHandler
	flashcardService services.FlashcardService
	exportService    services.ExportService
}

func NewFlashcardHandler(
	flashcardService services.FlashcardService,
	exportService services.ExportService,
	logger utils.Logger,
) *FlashcardHandler {
	return &FlashcardHandler{
		BaseHandler:      NewBaseHandler(logger),
		flashcardService: flashcardService,
		exportService:    exportService,
	}
}

// ListFlashcards returns all flashcards newest-first, optionally
// filtered by an exact subject query parameter.
func (h *FlashcardHandler) ListFlashcards(c *gin.Context) {
	var subject *models.Subject
	if raw := c.Query("subject"); raw != "" {
		s := models.Subject(raw)
		subject = &s
	}

	cards, err := h.flashcardService.List(c.Request.Context(), subject)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch flashcards", err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *FlashcardHandler) GetFlashcard(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	card, err := h.flashcardService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "Failed to fetch flashcard")
		return
	}

	c.JSON(http.StatusOK, card)
}

// GetFlashcardsBySubject accepts the subject as a path segment,
// upper-casing before validating so /subject/mathematics works.
func (h *FlashcardHandler) GetFlashcardsBySubject(c *gin.Context) {
	subject, err := models.ParseSubject(c.Param("subject"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", nil)
		return
	}

	cards, err := h.flashcardService.GetBySubject(c.Request.Context(), subject)
	if err != nil {
		h.handleServiceError(c, err, "Failed to fetch flashcards")
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *FlashcardHandler) CreateFlashcard(c *gin.Context) {
	var req services.FlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	card, err := h.flashcardService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to create flashcard")
		return
	}

	c.JSON(http.StatusCreated, card)
}

func (h *FlashcardHandler) UpdateFlashcard(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.FlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	card, err := h.flashcardService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err, "Failed to update flashcard")
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *FlashcardHandler) DeleteFlashcard(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.flashcardService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err, "Failed to delete flashcard")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Flashcard deleted successfully"})
}

// ExportFlashcards streams an xlsx workbook, optionally limited to one
// subject via ?subject=.
func (h *FlashcardHandler) ExportFlashcards(c *gin.Context) {
	var subject *models.Subject
	if raw := c.Query("subject"); raw != "" {
		s, err := models.ParseSubject(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", nil)
			return
		}
		subject = &s
	}

	workbook, err := h.exportService.ExportFlashcards(c.Request.Context(), subject)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export flashcards", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="flashcards.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func (h *FlashcardHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	if invalidSubject, ok := isValidationError(err); ok {
		if invalidSubject {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", err)
		} else {
			h.RespondWithError(c, http.StatusBadRequest, "Missing required fields", err)
		}
		return
	}

	switch {
	case errors.Is(err, services.ErrFlashcardNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Flashcard not found", nil)
	case errors.Is(err, services.ErrInvalidSubject):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid subject", nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
