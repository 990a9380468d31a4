package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
)

// NoteService manages per-lesson study notes.
type NoteService interface {
	Save(ctx context.Context, userID int64, moduleName string, lessonName *string, content string) (model.StudyNote, error)
	List(ctx context.Context, userID int64, moduleName *string) ([]model.StudyNote, error)
	Delete(ctx context.Context, userID, noteID int64) error
}

type noteService struct {
	notes     repository.NoteRepository
	sanitizer *bluemonday.Policy
}

func NewNoteService(notes repository.NoteRepository) NoteService {
	return &noteService{
		notes:     notes,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *noteService) Save(ctx context.Context, userID int64, moduleName string, lessonName *string, content string) (model.StudyNote, error) {
	moduleName = strings.TrimSpace(moduleName)
	if moduleName == "" {
		return model.StudyNote{}, ErrInvalid
	}
	if lessonName != nil {
		trimmed := strings.TrimSpace(*lessonName)
		if trimmed == "" {
			lessonName = nil
		} else {
			lessonName = &trimmed
		}
	}
	content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	if content == "" {
		return model.StudyNote{}, ErrInvalid
	}
	return s.notes.Save(ctx, userID, moduleName, lessonName, content)
}

func (s *noteService) List(ctx context.Context, userID int64, moduleName *string) ([]model.StudyNote, error) {
	return s.notes.ListByUser(ctx, userID, moduleName)
}

// Delete removes a note only when it belongs to the caller.
func (s *noteService) Delete(ctx context.Context, userID, noteID int64) error {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if note.UserID != userID {
		return ErrNotFound
	}
	if err := s.notes.Delete(ctx, noteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
