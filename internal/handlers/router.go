package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/studycompanion/study-service/internal/services"
	"github.com/studycompanion/study-service/internal/utils"
)

type HandlerManager struct {
	flashcardHandler *FlashcardHandler
	quizHandler      *QuizHandler
	taskHandler      *TaskHandler
}

func NewHandlerManager(
	flashcardService services.FlashcardService,
	quizService services.QuizService,
	taskService services.TaskService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		flashcardHandler: NewFlashcardHandler(flashcardService, exportService, logger),
		quizHandler:      NewQuizHandler(quizService, logger),
		taskHandler:      NewTaskHandler(taskService, logger),
	}
}

// SetupRoutes registers the REST surface.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	flashcards := router.Group("/flashcards")
	{
		flashcards.GET("", hm.flashcardHandler.ListFlashcards)
		flashcards.POST("", hm.flashcardHandler.CreateFlashcard)
		flashcards.GET("/export", hm.flashcardHandler.ExportFlashcards)
		flashcards.GET("/subject/:subject", hm.flashcardHandler.GetFlashcardsBySubject)
		flashcards.GET("/:id", hm.flashcardHandler.GetFlashcard)
		flashcards.PUT("/:id", hm.flashcardHandler.UpdateFlashcard)
		flashcards.DELETE("/:id", hm.flashcardHandler.DeleteFlashcard)
	}

	quizzes := router.Group("/quizzes")
	{
		quizzes.GET("", hm.quizHandler.ListQuizzes)
		quizzes.POST("", hm.quizHandler.CreateQuiz)
		quizzes.GET("/subject/:subject", hm.quizHandler.GetQuizzesBySubject)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
	}

	tasks := router.Group("/tasks")
	{
		tasks.GET("", hm.taskHandler.ListTasks)
		tasks.POST("", hm.taskHandler.CreateTask)
		tasks.GET("/:taskId", hm.taskHandler.GetTask)
		tasks.PATCH("/:taskId", hm.taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", hm.taskHandler.DeleteTask)
		tasks.GET("/:taskId/time-entries", hm.taskHandler.ListTimeEntries)
		tasks.POST("/:taskId/time-entries", hm.taskHandler.CreateTimeEntry)
	}

	timeEntries := router.Group("/time-entries")
	{
		timeEntries.PATCH("/:id", hm.taskHandler.UpdateTimeEntry)
		timeEntries.DELETE("/:id", hm.taskHandler.DeleteTimeEntry)
	}
}
