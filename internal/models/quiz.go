package models

import "time"

// Quiz is an aggregate of questions and their options. A quiz is
// written in one nested transaction and deleted with its questions and
// options through the cascade constraints below.
type Quiz struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Subject Subject `json:"subject" gorm:"not null;size:20;index"`

	Questions []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Question struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	QuizID  uint   `json:"quizId" gorm:"not null;index"`
	Content string `json:"content" gorm:"not null;type:text"`
	Points  int    `json:"points" gorm:"not null"`

	Options []Option `json:"options" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// Option is one answer choice. The schema does not enforce that a
// question has exactly one option with IsCorrect set; callers are
// expected to send well-formed quizzes.
type Option struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"questionId" gorm:"not null;index"`
	Content    string `json:"content" gorm:"not null;type:text"`
	IsCorrect  bool   `json:"isCorrect" gorm:"not null;default:false"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (Question) TableName() string {
	return "questions"
}

func (Option) TableName() string {
	return "options"
}

// TotalPoints sums the points of all questions in the quiz.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
