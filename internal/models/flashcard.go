package models

import "time"

// Flashcard is a single question/answer card. Cards have no relations;
// they are created, updated and deleted individually.
type Flashcard struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Question string  `json:"question" gorm:"not null;type:text" validate:"required"`
	Answer   string  `json:"answer" gorm:"not null;type:text" validate:"required"`
	Subject  Subject `json:"subject" gorm:"not null;size:20;index" validate:"required,subject"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
