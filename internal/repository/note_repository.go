package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]model.Note, error)
	Update(ctx context.Context, noteID uuid.UUID, ownerEmail, title, description string) (bool, error)
	Delete(ctx context.Context, noteID uuid.UUID, ownerEmail string) (bool, error)
}

type postgresNoteRepository struct {
	db *sqlx.DB
}

func NewPostgresNoteRepository(db *sqlx.DB) NoteRepository {
	return &postgresNoteRepository{db: db}
}

func (r *postgresNoteRepository) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	query := `
		INSERT INTO notes (owner_email, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, note.OwnerEmail, note.Title, note.Description)
	err := row.Scan(&note.ID, &note.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return note, nil
}

func (r *postgresNoteRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]model.Note, error) {
	var notes []model.Note
	query := `
		SELECT id, owner_email, title, description, updated_at
		FROM notes
		WHERE owner_email = $1
		ORDER BY updated_at DESC
	`
	err := r.db.SelectContext(ctx, &notes, query, ownerEmail)
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []model.Note{}
	}

	return notes, nil
}

func (r *postgresNoteRepository) Update(ctx context.Context, noteID uuid.UUID, ownerEmail, title, description string) (bool, error) {
	query := `
		UPDATE notes
		SET title = $3, description = $4, updated_at = now()
		WHERE id = $1 AND owner_email = $2
	`
	result, err := r.db.ExecContext(ctx, query, noteID, ownerEmail, title, description)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postgresNoteRepository) Delete(ctx context.Context, noteID uuid.UUID, ownerEmail string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND owner_email = $2`, noteID, ownerEmail)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
