package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlashcardService_Create(t *testing.T) {
	tests := []struct {
		name        string
		request     *FlashcardRequest
		setupMocks  func(*MockFlashcardRepository)
		expectError bool
	}{
		{
			name: "successful creation",
			request: &FlashcardRequest{
				Question: "What is 2+2?",
				Answer:   "4",
				Subject:  models.SubjectMathematics,
			},
			setupMocks: func(repo *MockFlashcardRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(card *models.Flashcard) bool {
					return card.Question == "What is 2+2?" && card.Subject == models.SubjectMathematics
				})).Return(nil)
			},
			expectError: false,
		},
		{
			name: "missing answer fails validation",
			request: &FlashcardRequest{
				Question: "What is 2+2?",
				Subject:  models.SubjectMathematics,
			},
			setupMocks:  func(repo *MockFlashcardRepository) {},
			expectError: true,
		},
		{
			name: "lowercase subject fails validation",
			request: &FlashcardRequest{
				Question: "What is 2+2?",
				Answer:   "4",
				Subject:  models.Subject("mathematics"),
			},
			setupMocks:  func(repo *MockFlashcardRepository) {},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := newMockRepository()
			tt.setupMocks(mockRepo.flashcardRepo)

			service := NewFlashcardService(mockRepo, testLogger(), validator.New())
			card, err := service.Create(context.Background(), tt.request)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, card)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, card)
				assert.Equal(t, tt.request.Question, card.Question)
			}
			mockRepo.flashcardRepo.AssertExpectations(t)
		})
	}
}

func TestFlashcardService_Update(t *testing.T) {
	mockRepo := newMockRepository()
	existing := &models.Flashcard{
		ID:       7,
		Question: "Old question",
		Answer:   "Old answer",
		Subject:  models.SubjectPhysics,
	}
	mockRepo.flashcardRepo.On("GetByID", mock.Anything, uint(7)).Return(existing, nil)
	mockRepo.flashcardRepo.On("Update", mock.Anything, mock.MatchedBy(func(card *models.Flashcard) bool {
		return card.ID == 7 && card.Question == "New question" && card.Subject == models.SubjectChemistry
	})).Return(nil)

	service := NewFlashcardService(mockRepo, testLogger(), validator.New())
	card, err := service.Update(context.Background(), 7, &FlashcardRequest{
		Question: "New question",
		Answer:   "New answer",
		Subject:  models.SubjectChemistry,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New question", card.Question)
	assert.Equal(t, models.SubjectChemistry, card.Subject)
	mockRepo.flashcardRepo.AssertExpectations(t)
}

func TestFlashcardService_Update_NotFound(t *testing.T) {
	mockRepo := newMockRepository()
	mockRepo.flashcardRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewFlashcardService(mockRepo, testLogger(), validator.New())
	card, err := service.Update(context.Background(), 99, &FlashcardRequest{
		Question: "Q",
		Answer:   "A",
		Subject:  models.SubjectPhysics,
	})

	assert.ErrorIs(t, err, ErrFlashcardNotFound)
	assert.Nil(t, card)
}

func TestFlashcardService_Delete(t *testing.T) {
	t.Run("existing card", func(t *testing.T) {
		mockRepo := newMockRepository()
		mockRepo.flashcardRepo.On("Exists", mock.Anything, uint(3)).Return(true, nil)
		mockRepo.flashcardRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewFlashcardService(mockRepo, testLogger(), validator.New())
		assert.NoError(t, service.Delete(context.Background(), 3))
		mockRepo.flashcardRepo.AssertExpectations(t)
	})

	t.Run("missing card", func(t *testing.T) {
		mockRepo := newMockRepository()
		mockRepo.flashcardRepo.On("Exists", mock.Anything, uint(3)).Return(false, nil)

		service := NewFlashcardService(mockRepo, testLogger(), validator.New())
		assert.ErrorIs(t, service.Delete(context.Background(), 3), ErrFlashcardNotFound)
		mockRepo.flashcardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestFlashcardService_GetBySubject_InvalidSubject(t *testing.T) {
	mockRepo := newMockRepository()
	service := NewFlashcardService(mockRepo, testLogger(), validator.New())

	cards, err := service.GetBySubject(context.Background(), models.Subject("BIOLOGY"))
	assert.ErrorIs(t, err, ErrInvalidSubject)
	assert.Nil(t, cards)
}
