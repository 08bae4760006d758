package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateReviewsTable, downCreateReviewsTable)
}

func upCreateReviewsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE reviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
			student_email TEXT NOT NULL,
			rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			CONSTRAINT uniq_review_per_student UNIQUE (session_id, student_email)
		);

		CREATE INDEX idx_reviews_session ON reviews (session_id);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateReviewsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS reviews;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
