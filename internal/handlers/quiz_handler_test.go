package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/services"
	"github.com/studycompanion/study-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockQuizService is a mock implementation of services.QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) ListGrouped(ctx context.Context) (map[models.Subject][]models.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Subject][]models.Quiz), args.Error(1)
}

func (m *MockQuizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) GetBySubject(ctx context.Context, subject models.Subject) ([]models.Quiz, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quiz), args.Error(1)
}

func (m *MockQuizService) Create(ctx context.Context, req *services.CreateQuizRequest) (*models.Quiz, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newQuizTestRouter(service *MockQuizService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewQuizHandler(service, logger)

	router := gin.New()
	router.GET("/quizzes", handler.ListQuizzes)
	router.POST("/quizzes", handler.CreateQuiz)
	router.GET("/quizzes/subject/:subject", handler.GetQuizzesBySubject)
	router.GET("/quizzes/:id", handler.GetQuiz)
	router.DELETE("/quizzes/:id", handler.DeleteQuiz)
	return router
}

func TestListQuizzes_Grouped(t *testing.T) {
	service := &MockQuizService{}
	service.On("ListGrouped", mock.Anything).Return(map[models.Subject][]models.Quiz{
		models.SubjectPhysics: {
			{ID: 1, Subject: models.SubjectPhysics, Questions: []models.Question{
				{ID: 1, Content: "What is the unit of force?", Points: 2, Options: []models.Option{
					{ID: 1, Content: "Newton", IsCorrect: true},
					{ID: 2, Content: "Joule"},
				}},
			}},
		},
	}, nil)
	router := newQuizTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var grouped map[models.Subject][]models.Quiz
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &grouped))
	assert.Len(t, grouped[models.SubjectPhysics], 1)
	assert.Len(t, grouped[models.SubjectPhysics][0].Questions, 1)
	assert.Len(t, grouped[models.SubjectPhysics][0].Questions[0].Options, 2)
}

// Creating a quiz responds 200 with the stored aggregate, not 201.
func TestCreateQuiz(t *testing.T) {
	service := &MockQuizService{}
	service.On("Create", mock.Anything, mock.MatchedBy(func(req *services.CreateQuizRequest) bool {
		return req.Subject == models.SubjectChemistry && len(req.Questions) == 1
	})).Return(&models.Quiz{ID: 9, Subject: models.SubjectChemistry}, nil)
	router := newQuizTestRouter(service)

	body := `{
		"subject": "CHEMISTRY",
		"questions": [
			{
				"content": "What is H2O?",
				"points": 1,
				"options": [
					{"content": "Water", "isCorrect": true},
					{"content": "Salt", "isCorrect": false}
				]
			}
		]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/quizzes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var quiz models.Quiz
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &quiz))
	assert.Equal(t, uint(9), quiz.ID)
}

// Deleting an unknown quiz is a 500, not a 404. There is no existence
// probe on this path.
func TestDeleteQuiz_Missing(t *testing.T) {
	service := &MockQuizService{}
	service.On("Delete", mock.Anything, uint(42)).Return(gorm.ErrRecordNotFound)
	router := newQuizTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/quizzes/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to delete quiz", resp.Error)
}

func TestDeleteQuiz(t *testing.T) {
	service := &MockQuizService{}
	service.On("Delete", mock.Anything, uint(9)).Return(nil)
	router := newQuizTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/quizzes/9", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestGetQuiz_NotFound(t *testing.T) {
	service := &MockQuizService{}
	service.On("GetByID", mock.Anything, uint(3)).Return(nil, services.ErrQuizNotFound)
	router := newQuizTestRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
