package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Review, error)
	AverageRating(ctx context.Context, sessionID uuid.UUID) (*float64, int, error)
}

type postgresReviewRepository struct {
	db *sqlx.DB
}

func NewPostgresReviewRepository(db *sqlx.DB) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (session_id, student_email, rating, comment)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, review.SessionID, review.StudentEmail, review.Rating, review.Comment)
	return err
}

func (r *postgresReviewRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	query := `
		SELECT r.id, r.session_id, r.student_email, COALESCE(u.name, '') AS student_name, r.rating, r.comment, r.created_at
		FROM reviews r
		LEFT JOIN users u ON r.student_email = u.email
		WHERE r.session_id = $1
		ORDER BY r.created_at DESC
	`
	err := r.db.SelectContext(ctx, &reviews, query, sessionID)
	if err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []model.Review{}
	}

	return reviews, nil
}

// AverageRating returns a nil average when the session has no reviews,
// the aggregate never divides by zero.
func (r *postgresReviewRepository) AverageRating(ctx context.Context, sessionID uuid.UUID) (*float64, int, error) {
	var result struct {
		Average *float64 `db:"average"`
		Count   int      `db:"count"`
	}
	query := `SELECT AVG(rating) AS average, COUNT(*) AS count FROM reviews WHERE session_id = $1`
	err := r.db.GetContext(ctx, &result, query, sessionID)
	if err != nil {
		return nil, 0, err
	}

	return result.Average, result.Count, nil
}
