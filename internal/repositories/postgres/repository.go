package postgres

import (
	"github.com/studycompanion/study-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	flashcard repositories.FlashcardRepository
	quiz      repositories.QuizRepository
	task      repositories.TaskRepository
	timeEntry repositories.TimeEntryRepository
}

// NewRepository wires all PostgreSQL repositories over one gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		flashcard: NewFlashcardPostgreSQL(db),
		quiz:      NewQuizPostgreSQL(db),
		task:      NewTaskPostgreSQL(db),
		timeEntry: NewTimeEntryPostgreSQL(db),
	}
}

func (r *repository) Flashcard() repositories.FlashcardRepository { return r.flashcard }
func (r *repository) Quiz() repositories.QuizRepository           { return r.quiz }
func (r *repository) Task() repositories.TaskRepository           { return r.task }
func (r *repository) TimeEntry() repositories.TimeEntryRepository { return r.timeEntry }
