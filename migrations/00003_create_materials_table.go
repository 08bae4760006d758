package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateMaterialsTable, downCreateMaterialsTable)
}

func upCreateMaterialsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
		CREATE TABLE materials (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
			tutor_email TEXT NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			cover_image_url TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX idx_materials_session ON materials (session_id);
		CREATE INDEX idx_materials_tutor ON materials (tutor_email);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateMaterialsTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS materials;`
	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}
