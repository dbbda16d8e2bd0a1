package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FlashcardsBySubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flashcards/subject/MATHEMATICS", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Flashcard{
			{ID: 1, Question: "What is 2+2?", Answer: "4", Subject: models.SubjectMathematics},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	cards, err := c.FlashcardsBySubject(context.Background(), models.SubjectMathematics)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "What is 2+2?", cards[0].Question)
}

func TestClient_FlashcardsWithSubjectFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flashcards", r.URL.Path)
		assert.Equal(t, "PHYSICS", r.URL.Query().Get("subject"))
		json.NewEncoder(w).Encode([]models.Flashcard{
			{ID: 2, Question: "What is the unit of force?", Answer: "Newton", Subject: models.SubjectPhysics},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	subject := models.SubjectPhysics
	cards, err := c.Flashcards(context.Background(), &subject)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, models.SubjectPhysics, cards[0].Subject)
}

func TestClient_CreateFlashcard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/flashcards", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is 2+2?", body["question"])
		assert.Equal(t, "MATHEMATICS", body["subject"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Flashcard{
			ID: 7, Question: body["question"], Answer: body["answer"],
			Subject: models.Subject(body["subject"]),
		})
	}))
	defer server.Close()

	c := New(server.URL)
	card, err := c.CreateFlashcard(context.Background(), "What is 2+2?", "4", models.SubjectMathematics)
	require.NoError(t, err)
	assert.Equal(t, uint(7), card.ID)
	assert.Equal(t, "4", card.Answer)
}

func TestClient_GroupedQuizzes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quizzes", r.URL.Path)
		json.NewEncoder(w).Encode(map[models.Subject][]models.Quiz{
			models.SubjectPhysics: {{ID: 1, Subject: models.SubjectPhysics}},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	grouped, err := c.GroupedQuizzes(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped[models.SubjectPhysics], 1)
}

func TestClient_StopTimeEntrySendsEndTime(t *testing.T) {
	end := time.Date(2025, 3, 10, 9, 25, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/time-entries/11", r.URL.Path)

		var body map[string]*time.Time
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body["endTime"])
		assert.True(t, body["endTime"].Equal(end))

		json.NewEncoder(w).Encode(models.TimeEntry{ID: 11, EndTime: body["endTime"]})
	}))
	defer server.Close()

	c := New(server.URL)
	entry, err := c.StopTimeEntry(context.Background(), 11, end)
	require.NoError(t, err)
	require.NotNil(t, entry.EndTime)
}

func TestClient_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Flashcard not found"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Flashcards(context.Background(), nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Flashcard not found", apiErr.Message)
}
