package models

import (
	"fmt"
	"strings"
)

// Subject tags flashcards, quizzes and tasks with a study domain.
type Subject string

const (
	SubjectPhysics     Subject = "PHYSICS"
	SubjectChemistry   Subject = "CHEMISTRY"
	SubjectMathematics Subject = "MATHEMATICS"
)

// AllSubjects returns the valid subject values in declaration order.
func AllSubjects() []Subject {
	return []Subject{SubjectPhysics, SubjectChemistry, SubjectMathematics}
}

// IsValid reports whether s is one of the three known subjects.
// Matching is case-sensitive; request bodies must carry the
// upper-case form.
func (s Subject) IsValid() bool {
	switch s {
	case SubjectPhysics, SubjectChemistry, SubjectMathematics:
		return true
	}
	return false
}

func (s Subject) String() string {
	return string(s)
}

// ParseSubject upper-cases raw and validates it against the enum.
// Path-segment routes accept "mathematics" and friends through this.
func ParseSubject(raw string) (Subject, error) {
	s := Subject(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid subject %q", raw)
	}
	return s, nil
}
