package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookingsTable, downCreateBookingsTable)
}

func upCreateBookingsTable(ctx context.Context, tx *sql.Tx) error {
	// The unique index is the idempotency guard for registration: a
	// second booking of the same session by the same student violates
	// it instead of silently inserting a duplicate.
	query := `
		CREATE TABLE bookings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
			student_email TEXT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'incomplete',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			CONSTRAINT check_payment_status CHECK (payment_status IN ('incomplete', 'paid')),
			CONSTRAINT uniq_booking_per_student UNIQUE (session_id, student_email)
		);

		CREATE INDEX idx_bookings_student ON bookings (student_email);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateBookingsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS bookings;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
