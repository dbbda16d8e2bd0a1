package events

import "time"

// EventType labels the study events this service publishes.
type EventType string

const (
	EventQuizCreated   EventType = "quiz.created"
	EventTaskCompleted EventType = "task.completed"
	EventTimerStarted  EventType = "timer.started"
	EventTimerStopped  EventType = "timer.stopped"
)

// StudyEvent is the envelope shared by all published events.
type StudyEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quiz_id"`
	Subject       string `json:"subject"`
	QuestionCount int    `json:"question_count"`
	TotalPoints   int    `json:"total_points"`
}

type TaskCompletedEvent struct {
	TaskID    uint   `json:"task_id"`
	Title     string `json:"title"`
	Subject   string `json:"subject"`
	Completed bool   `json:"completed"`
}

type TimerEvent struct {
	TaskID      uint       `json:"task_id"`
	TimeEntryID uint       `json:"time_entry_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}
