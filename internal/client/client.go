// Package client is the HTTP client for the study service. It backs
// the session state machines in internal/session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studycompanion/study-service/internal/models"
)

// APIError carries the service's error body and status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to one study-service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient creates a client with a caller-owned http.Client,
// used by tests with httptest servers.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Flashcards lists all flashcards, optionally filtered by subject.
func (c *Client) Flashcards(ctx context.Context, subject *models.Subject) ([]models.Flashcard, error) {
	path := "/flashcards"
	if subject != nil {
		path += "?subject=" + subject.String()
	}
	var cards []models.Flashcard
	if err := c.do(ctx, http.MethodGet, path, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// FlashcardsBySubject lists the subject's flashcards. The path
// segment is matched case-insensitively by the service.
func (c *Client) FlashcardsBySubject(ctx context.Context, subject models.Subject) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := c.do(ctx, http.MethodGet, "/flashcards/subject/"+subject.String(), nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateFlashcard creates a flashcard.
func (c *Client) CreateFlashcard(ctx context.Context, question, answer string, subject models.Subject) (*models.Flashcard, error) {
	body := map[string]any{"question": question, "answer": answer, "subject": subject}
	var card models.Flashcard
	if err := c.do(ctx, http.MethodPost, "/flashcards", body, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// GroupedQuizzes fetches all quizzes grouped by subject.
func (c *Client) GroupedQuizzes(ctx context.Context) (map[models.Subject][]models.Quiz, error) {
	var grouped map[models.Subject][]models.Quiz
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, &grouped); err != nil {
		return nil, err
	}
	return grouped, nil
}

// Tasks lists all tasks with their time entries.
func (c *Client) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, title string, description *string, subject models.Subject) (*models.Task, error) {
	body := map[string]any{"title": title, "subject": subject}
	if description != nil {
		body["description"] = *description
	}
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetTaskCompleted patches the task's completed flag.
func (c *Client) SetTaskCompleted(ctx context.Context, taskID uint, completed bool) (*models.Task, error) {
	body := map[string]any{"completed": completed}
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", taskID), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and its time entries.
func (c *Client) DeleteTask(ctx context.Context, taskID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil)
}

// StartTimeEntry opens a time entry on the task.
func (c *Client) StartTimeEntry(ctx context.Context, taskID uint, start time.Time) (*models.TimeEntry, error) {
	body := map[string]any{"startTime": start}
	var entry models.TimeEntry
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/time-entries", taskID), body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StopTimeEntry sets the entry's end time. Patching without an end
// time would clear it instead.
func (c *Client) StopTimeEntry(ctx context.Context, entryID uint, end time.Time) (*models.TimeEntry, error) {
	body := map[string]any{"endTime": end}
	var entry models.TimeEntry
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/time-entries/%d", entryID), body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeEntry removes a single time entry.
func (c *Client) DeleteTimeEntry(ctx context.Context, entryID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/time-entries/%d", entryID), nil, nil)
}
