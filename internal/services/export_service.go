package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/studycompanion/study-service/internal/models"
	"github.com/studycompanion/study-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService writes flashcards to an Excel workbook, one sheet per
// subject.
type ExportService interface {
	ExportFlashcards(ctx context.Context, subject *models.Subject) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var flashcardExportHeaders = []string{"ID", "Question", "Answer", "Subject", "Created At"}

func (s *exportService) ExportFlashcards(ctx context.Context, subject *models.Subject) ([]byte, error) {
	cards, err := s.repo.Flashcard().List(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	subjects := models.AllSubjects()
	if subject != nil {
		subjects = []models.Subject{*subject}
	}

	for i, subj := range subjects {
		sheet := string(subj)
		if i == 0 {
			// Rename the default sheet instead of leaving "Sheet1".
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to create sheet: %w", err)
			}
		}

		for col, header := range flashcardExportHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return nil, err
			}
		}

		row := 2
		for _, card := range cards {
			if card.Subject != subj {
				continue
			}
			values := []interface{}{
				strconv.FormatUint(uint64(card.ID), 10),
				card.Question,
				card.Answer,
				string(card.Subject),
				card.CreatedAt.Format(time.RFC3339),
			}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Flashcards exported", "cards", len(cards))
	return buf.Bytes(), nil
}
