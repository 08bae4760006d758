package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStudySessionsTable, downCreateStudySessionsTable)
}

func upCreateStudySessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE study_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			tutor_email TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			registration_start TIMESTAMP WITH TIME ZONE NOT NULL,
			registration_end TIMESTAMP WITH TIME ZONE NOT NULL,
			class_start TIMESTAMP WITH TIME ZONE NOT NULL,
			duration TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			registration_fee INT,
			request_attempt INT NOT NULL DEFAULT 1,
			rejection_reason TEXT,
			rejection_feedback TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			CONSTRAINT check_status CHECK (status IN ('pending', 'approved', 'rejected')),
			CONSTRAINT check_fee_only_when_approved CHECK (
				(status = 'approved' AND registration_fee IS NOT NULL)
				OR (status <> 'approved' AND registration_fee IS NULL)
			)
		);

		CREATE INDEX idx_study_sessions_tutor_status ON study_sessions (tutor_email, status);
		CREATE INDEX idx_study_sessions_status ON study_sessions (status);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateStudySessionsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS study_sessions;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
