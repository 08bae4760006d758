package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/repository"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteService interface {
	CreateNote(ctx context.Context, note *model.Note) (*model.Note, error)
	ListNotes(ctx context.Context, ownerEmail string) ([]model.Note, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, ownerEmail, title, description string) error
	DeleteNote(ctx context.Context, noteID uuid.UUID, ownerEmail string) error
}

type noteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) CreateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	return s.noteRepo.Create(ctx, note)
}

func (s *noteService) ListNotes(ctx context.Context, ownerEmail string) ([]model.Note, error) {
	return s.noteRepo.ListByOwner(ctx, ownerEmail)
}

func (s *noteService) UpdateNote(ctx context.Context, noteID uuid.UUID, ownerEmail, title, description string) error {
	updated, err := s.noteRepo.Update(ctx, noteID, ownerEmail, title, description)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNoteNotFound
	}

	return nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID uuid.UUID, ownerEmail string) error {
	deleted, err := s.noteRepo.Delete(ctx, noteID, ownerEmail)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}

	return nil
}
