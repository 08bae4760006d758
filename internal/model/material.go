package model

import (
	"time"

	"github.com/google/uuid"
)

type Material struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SessionID     uuid.UUID `db:"session_id" json:"session_id"`
	TutorEmail    string    `db:"tutor_email" json:"tutor_email"`
	Title         string    `db:"title" json:"title"`
	Link          string    `db:"link" json:"link"`
	CoverImageURL *string   `db:"cover_image_url" json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
