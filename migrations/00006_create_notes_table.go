package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateNotesTable, downCreateNotesTable)
}

func upCreateNotesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE notes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_email TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_notes_owner ON notes (owner_email);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateNotesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS notes;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
