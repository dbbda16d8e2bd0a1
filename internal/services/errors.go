package services

import "errors"

// Sentinel errors handlers translate to HTTP status codes. Anything a
// handler cannot match is a store failure and becomes a generic 500.
var (
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrTaskNotFound      = errors.New("task not found")

	ErrInvalidSubject = errors.New("invalid subject")
)
