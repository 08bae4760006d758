package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type MaterialUpdate struct {
	Title         *string
	Link          *string
	CoverImageURL *string
}

type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) (*model.Material, error)
	FindByID(ctx context.Context, materialID uuid.UUID) (*model.Material, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]model.Material, error)
	ListAll(ctx context.Context) ([]model.Material, error)
	ListVisibleToStudent(ctx context.Context, studentEmail string) ([]model.Material, error)
	Update(ctx context.Context, materialID uuid.UUID, tutorEmail string, update MaterialUpdate) (bool, error)
	Delete(ctx context.Context, materialID uuid.UUID) (bool, error)
}

type postgresMaterialRepository struct {
	db *sqlx.DB
}

func NewPostgresMaterialRepository(db *sqlx.DB) MaterialRepository {
	return &postgresMaterialRepository{db: db}
}

func (r *postgresMaterialRepository) Create(ctx context.Context, material *model.Material) (*model.Material, error) {
	query := `
		INSERT INTO materials (session_id, tutor_email, title, link, cover_image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		material.SessionID, material.TutorEmail, material.Title, material.Link, material.CoverImageURL)
	err := row.Scan(&material.ID, &material.CreatedAt)

	if err != nil {
		return nil, err
	}

	return material, nil
}

func (r *postgresMaterialRepository) FindByID(ctx context.Context, materialID uuid.UUID) (*model.Material, error) {
	var material model.Material
	query := `SELECT id, session_id, tutor_email, title, link, cover_image_url, created_at FROM materials WHERE id = $1`
	err := r.db.GetContext(ctx, &material, query, materialID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &material, nil
}

func (r *postgresMaterialRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]model.Material, error) {
	var materials []model.Material
	query := `
		SELECT id, session_id, tutor_email, title, link, cover_image_url, created_at
		FROM materials
		WHERE tutor_email = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &materials, query, tutorEmail)
	if err != nil {
		return nil, err
	}

	if materials == nil {
		materials = []model.Material{}
	}

	return materials, nil
}

func (r *postgresMaterialRepository) ListAll(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	query := `SELECT id, session_id, tutor_email, title, link, cover_image_url, created_at FROM materials ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &materials, query)
	if err != nil {
		return nil, err
	}

	if materials == nil {
		materials = []model.Material{}
	}

	return materials, nil
}

// ListVisibleToStudent returns only materials of sessions the student
// holds a booking for. The join is the whole access check: a session
// the student never booked can never contribute a row.
func (r *postgresMaterialRepository) ListVisibleToStudent(ctx context.Context, studentEmail string) ([]model.Material, error) {
	var materials []model.Material
	query := `
		SELECT m.id, m.session_id, m.tutor_email, m.title, m.link, m.cover_image_url, m.created_at
		FROM materials m
		JOIN bookings b ON m.session_id = b.session_id
		WHERE b.student_email = $1
		ORDER BY m.created_at DESC
	`
	err := r.db.SelectContext(ctx, &materials, query, studentEmail)
	if err != nil {
		return nil, err
	}

	if materials == nil {
		materials = []model.Material{}
	}

	return materials, nil
}

func (r *postgresMaterialRepository) Update(ctx context.Context, materialID uuid.UUID, tutorEmail string, update MaterialUpdate) (bool, error) {
	query := `
		UPDATE materials
		SET title = COALESCE($3, title),
			link = COALESCE($4, link),
			cover_image_url = COALESCE($5, cover_image_url)
		WHERE id = $1 AND tutor_email = $2
	`
	result, err := r.db.ExecContext(ctx, query, materialID, tutorEmail, update.Title, update.Link, update.CoverImageURL)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postgresMaterialRepository) Delete(ctx context.Context, materialID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, materialID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
